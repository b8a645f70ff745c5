package scanner

import (
	"fmt"
	"strings"
)

// Kind identifies the ecosystem of a detected project.
//
// The declaration order is the classification priority: a directory that
// carries markers for several kinds is classified as the earliest one.
type Kind int

const (
	Rust Kind = iota
	Node
	Python
	Java
	DotNet
	Go
	Zig
	CMake
	Swift
	Elixir
	Haskell
	Dart
	Ruby
	Scala
	Unity
	Godot
	Terraform

	numKinds
)

// kindSpec is the static description of one kind.
type kindSpec struct {
	id        string
	display   string
	markers   []string
	cleanable []string
}

// kindSpecs is indexed by Kind. Patterns are an exact name, a nested path
// containing "/", or a suffix glob starting with "*".
var kindSpecs = [numKinds]kindSpec{
	Rust: {
		id: "Rust", display: "Rust",
		markers:   []string{"Cargo.toml"},
		cleanable: []string{"target"},
	},
	Node: {
		id: "Node", display: "Node.js",
		markers:   []string{"package.json"},
		cleanable: []string{"node_modules", ".next", ".nuxt", "dist", ".cache"},
	},
	Python: {
		id: "Python", display: "Python",
		markers:   []string{"pyproject.toml", "setup.py", "requirements.txt"},
		cleanable: []string{"__pycache__", ".venv", "venv", ".tox", "*.egg-info", ".mypy_cache", ".pytest_cache"},
	},
	Java: {
		id: "Java", display: "Java",
		markers:   []string{"pom.xml", "build.gradle", "build.gradle.kts"},
		cleanable: []string{"target", "build", ".gradle"},
	},
	DotNet: {
		id: "DotNet", display: ".NET",
		markers:   []string{"*.csproj", "*.fsproj", "*.sln"},
		cleanable: []string{"bin", "obj"},
	},
	Go: {
		id: "Go", display: "Go",
		markers: []string{"go.mod"},
		// Module caches are shared across projects, nothing per-project to clean.
		cleanable: nil,
	},
	Zig: {
		id: "Zig", display: "Zig",
		markers:   []string{"build.zig"},
		cleanable: []string{"zig-cache", "zig-out"},
	},
	CMake: {
		id: "CMake", display: "CMake",
		markers:   []string{"CMakeLists.txt"},
		cleanable: []string{"build", "cmake-build-debug", "cmake-build-release"},
	},
	Swift: {
		id: "Swift", display: "Swift",
		markers:   []string{"Package.swift"},
		cleanable: []string{".build"},
	},
	Elixir: {
		id: "Elixir", display: "Elixir",
		markers:   []string{"mix.exs"},
		cleanable: []string{"_build", "deps"},
	},
	Haskell: {
		id: "Haskell", display: "Haskell",
		markers:   []string{"stack.yaml", "*.cabal"},
		cleanable: []string{".stack-work"},
	},
	Dart: {
		id: "Dart", display: "Dart",
		markers:   []string{"pubspec.yaml"},
		cleanable: []string{".dart_tool", "build"},
	},
	Ruby: {
		id: "Ruby", display: "Ruby",
		markers:   []string{"Gemfile"},
		cleanable: []string{"vendor/bundle"},
	},
	Scala: {
		id: "Scala", display: "Scala",
		markers:   []string{"build.sbt"},
		cleanable: []string{"target", "project/target"},
	},
	Unity: {
		id: "Unity", display: "Unity",
		markers:   []string{"ProjectSettings/ProjectVersion.txt"},
		cleanable: []string{"Library", "Temp", "Obj", "Logs"},
	},
	Godot: {
		id: "Godot", display: "Godot",
		markers:   []string{"project.godot"},
		cleanable: []string{".godot"},
	},
	Terraform: {
		id: "Terraform", display: "Terraform",
		markers:   []string{"main.tf", "*.tf"},
		cleanable: []string{".terraform"},
	},
}

// AllKinds returns every kind in priority order.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k Kind) valid() bool {
	return k >= 0 && k < numKinds
}

// String returns the human-facing name, e.g. "Node.js".
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindSpecs[k].display
}

// ID returns the stable identifier used in config files and JSON, e.g. "Node".
func (k Kind) ID() string {
	if !k.valid() {
		return ""
	}
	return kindSpecs[k].id
}

// Markers returns the marker patterns identifying this kind.
func (k Kind) Markers() []string {
	if !k.valid() {
		return nil
	}
	return kindSpecs[k].markers
}

// CleanableDirs returns the artifact directory patterns safe to delete.
func (k Kind) CleanableDirs() []string {
	if !k.valid() {
		return nil
	}
	return kindSpecs[k].cleanable
}

// ParseKind resolves an identifier or display name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for k := Kind(0); k < numKinds; k++ {
		if strings.EqualFold(s, kindSpecs[k].id) || strings.EqualFold(s, kindSpecs[k].display) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown project kind %q", s)
}

// MarshalText encodes the kind as its identifier.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, fmt.Errorf("invalid project kind %d", int(k))
	}
	return []byte(k.ID()), nil
}

// UnmarshalText decodes an identifier or display name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
