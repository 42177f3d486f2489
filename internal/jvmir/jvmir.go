// Package jvmir documents the typed contract a JVM class-file emitter
// would consume from internal/tac.Program. It is a stub: spec.md's
// Non-goals exclude a full class-file writer, but SPEC_FULL.md still asks
// for the contract's shape to be named, since the TAC IR is designed
// to satisfy it.
package jvmir

import "github.com/decaflang/decaf/internal/tac"

// ConstantKind discriminates one constant-pool entry's payload, mirroring
// the JVM spec's CONSTANT_* tags this repository's IR would need to emit.
type ConstantKind int

const (
	ConstInt ConstantKind = iota
	ConstString
	ConstClassRef
	ConstMethodRef
	ConstFieldRef
)

// Constant is one constant-pool entry a tac.Program's literals and
// qualified names would be interned into.
type Constant struct {
	Kind  ConstantKind
	Int   int32
	Str   string
	Class string
	Name  string // method/field name, when Kind is a Ref
}

// MethodDescriptor is the JVM descriptor string contract
// (e.g. "(ILjava/lang/String;)V") a tac.Method's signature would be
// rendered into. FieldDescriptors for arrays and object types follow the
// same "[" / "L...;" convention.
type MethodDescriptor struct {
	QualifiedName string
	Descriptor    string
}

// Summarize builds the constant pool and method descriptor table a class
// emitter would need, without emitting any class-file bytes. It exists so
// the contract between internal/tac and a future emitter is checked at
// compile time rather than documented only in prose.
func Summarize(p *tac.Program) ([]Constant, []MethodDescriptor) {
	var consts []Constant
	var methods []MethodDescriptor

	seen := make(map[string]bool)
	for _, c := range p.Classes {
		if seen[c.ClassName] {
			continue
		}
		seen[c.ClassName] = true
		consts = append(consts, Constant{Kind: ConstClassRef, Class: c.ClassName})
	}
	for _, m := range p.Methods {
		methods = append(methods, MethodDescriptor{
			QualifiedName: m.QualifiedName,
			Descriptor:    descriptorFor(m),
		})
	}
	return consts, methods
}

// descriptorFor renders a placeholder descriptor: every parameter and the
// return type are unknown at this layer (tac.Method doesn't carry sema
// types), so every slot is conservatively treated as a reference type.
func descriptorFor(m *tac.Method) string {
	descriptor := "("
	params := m.NumParams
	if !m.Static {
		params-- // the receiver is implicit in a JVM instance method
	}
	for i := 0; i < params; i++ {
		descriptor += "Ljava/lang/Object;"
	}
	descriptor += ")Ljava/lang/Object;"
	return descriptor
}
