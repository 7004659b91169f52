// Package class implements the Lit VM's class model and lazy loader:
// method tables, field layout, static cells, static initialisers, and the
// single-inheritance-plus-interfaces merge performed at END_CLASS.
//
// Grounded on the teacher's registry.Class/registry.Interface shape
// (field/method/constant tables keyed by name) and vm.ClassManager's
// lazy EnsureClass pattern, generalised to the source's exact
// END_CLASS merge semantics (see Class.mergeFrom).
package class

import "fmt"

// StaticField is a declared-typed static cell; Present distinguishes
// "declared but never assigned" from a zero value, matching the source's
// `(type, None)` sentinel.
type StaticField struct {
	DeclaredType string
	Present      bool
	Value        interface{} // holds value.Value; interface{} to avoid an import cycle
}

// Class is the fully-merged, loaded record for one class or interface
// declaration.
type Class struct {
	Name string

	FieldOrder  []string
	Fields      map[string]string // name -> declared type tag

	MethodOrder []string
	Methods     map[string]string // name -> label

	StaticFieldOrder []string
	StaticFields     map[string]*StaticField

	StaticMethodOrder []string
	StaticMethods     map[string]string

	StaticInit        string // label, empty if none
	StaticInitialized bool

	SuperClass string
	Interfaces []string
	Generics   []string

	// loading guards cyclic EXTENDS/IMPLEMENTS chains.
	loading bool
}

func newClass(name string) *Class {
	return &Class{
		Name:          name,
		Fields:        make(map[string]string),
		Methods:       make(map[string]string),
		StaticFields:  make(map[string]*StaticField),
		StaticMethods: make(map[string]string),
	}
}

func (c *Class) addField(name, declType string) {
	if _, ok := c.Fields[name]; !ok {
		c.FieldOrder = append(c.FieldOrder, name)
	}
	c.Fields[name] = declType
}

func (c *Class) addMethod(name, label string) {
	if _, ok := c.Methods[name]; !ok {
		c.MethodOrder = append(c.MethodOrder, name)
	}
	c.Methods[name] = label
}

func (c *Class) addStaticField(name, declType string) {
	if _, ok := c.StaticFields[name]; !ok {
		c.StaticFieldOrder = append(c.StaticFieldOrder, name)
	}
	c.StaticFields[name] = &StaticField{DeclaredType: declType}
}

func (c *Class) addStaticMethod(name, label string) {
	if _, ok := c.StaticMethods[name]; !ok {
		c.StaticMethodOrder = append(c.StaticMethodOrder, name)
	}
	c.StaticMethods[name] = label
}

// mergeFrom copies every entry of other into c, overwriting same-named
// local entries. This is a literal port of the source's END_CLASS merge
// (lvm.py lines 130-150): parent entries are written unconditionally
// after local ones were already placed, so on a name collision the
// *parent* wins. spec.md §9 leaves this as an open question ("most likely
// child wins"); original_source/vm/lvm.py settles it the other way, and
// this implementation follows the source. See DESIGN.md.
func (c *Class) mergeFrom(other *Class) {
	for _, name := range other.FieldOrder {
		c.addField(name, other.Fields[name])
	}
	for _, name := range other.MethodOrder {
		c.addMethod(name, other.Methods[name])
	}
	for _, name := range other.StaticFieldOrder {
		c.addStaticField(name, other.StaticFields[name].DeclaredType)
	}
	for _, name := range other.StaticMethodOrder {
		c.addStaticMethod(name, other.StaticMethods[name])
	}
}

// mergeInterfaceMethods copies only the method table of an interface,
// matching END_CLASS's interface pass (methods only, no fields/statics).
func (c *Class) mergeInterfaceMethods(iface *Class) {
	for _, name := range iface.MethodOrder {
		c.addMethod(name, iface.Methods[name])
	}
}

// ImplementsTransitively reports whether target appears in c's own
// Interfaces list, its superclass chain's Interfaces lists, or as the
// class name itself — used by INSTANCE_OF.
func (c *Class) ImplementsTransitively(target string, classes map[string]*Class) bool {
	cur := c
	for cur != nil {
		if cur.Name == target {
			return true
		}
		for _, iface := range cur.Interfaces {
			if iface == target {
				return true
			}
		}
		if cur.SuperClass == "" {
			return false
		}
		cur = classes[cur.SuperClass]
	}
	return false
}

// ErrNotFound is returned by Loader when a referenced class has no
// CLASS declaration in the program.
type ErrNotFound struct{ Name string }

func (e *ErrNotFound) Error() string { return fmt.Sprintf("class %q is not found", e.Name) }

// ErrCyclicInheritance is returned when EXTENDS/IMPLEMENTS forms a cycle.
type ErrCyclicInheritance struct{ Name string }

func (e *ErrCyclicInheritance) Error() string {
	return fmt.Sprintf("cyclic inheritance detected while loading %q", e.Name)
}

// ErrMalformedBody is returned when a CLASS body contains an opcode other
// than the class-declaration instruction set.
type ErrMalformedBody struct {
	ClassName string
	Opcode    string
}

func (e *ErrMalformedBody) Error() string {
	return fmt.Sprintf("not a class instruction: %s (in class %s)", e.Opcode, e.ClassName)
}
