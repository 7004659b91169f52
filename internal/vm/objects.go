package vm

import (
	"github.com/litlang/litvm/internal/bytecode"
	"github.com/litlang/litvm/internal/value"
)

func (m *Machine) execNew(line bytecode.Line) error {
	className := line.Arg(1)
	initLabel := line.Arg(2)

	cls, err := m.Loader.Load(className)
	if err != nil {
		return m.fault("%v", err)
	}
	if _, ok := m.Labels[initLabel]; !ok {
		return m.fault("init label not found: %s", initLabel)
	}

	obj := value.NewObject(className, cls.FieldOrder, cls.Fields)

	m.CallStack = append(m.CallStack, m.IP)
	m.pushFrame(make(Frame))
	thisVal := value.Obj(obj)
	m.This = &thisVal
	return m.jumpToLabel(initLabel)
}

func (m *Machine) execNewGenericObj(line bytecode.Line) error {
	className := line.Arg(1)
	initLabel := line.Arg(2)
	genericArgs := line.Fields[3:]

	cls, err := m.Loader.Load(className)
	if err != nil {
		return m.fault("%v", err)
	}
	if _, ok := m.Labels[initLabel]; !ok {
		return m.fault("init label not found: %s", initLabel)
	}
	if len(cls.Generics) != len(genericArgs) {
		return m.fault("generic argument count mismatch for %s: expected %d, got %d",
			className, len(cls.Generics), len(genericArgs))
	}

	genericMap := make(map[string]string, len(cls.Generics))
	for i, g := range cls.Generics {
		genericMap[g] = genericArgs[i]
	}

	resolvedTypes := make(map[string]string, len(cls.Fields))
	for name, declType := range cls.Fields {
		if concrete, ok := genericMap[declType]; ok {
			resolvedTypes[name] = concrete
		} else {
			resolvedTypes[name] = declType
		}
	}

	obj := value.NewObject(className, cls.FieldOrder, resolvedTypes)
	obj.GenericMap = genericMap

	m.CallStack = append(m.CallStack, m.IP)
	m.pushFrame(make(Frame))
	thisVal := value.Obj(obj)
	m.This = &thisVal
	return m.jumpToLabel(initLabel)
}

func (m *Machine) execInitField(line bytecode.Line) error {
	fieldName := line.Arg(1)

	objVal, err := m.popTag(value.TagObject)
	if err != nil {
		return err
	}
	val, err := m.pop()
	if err != nil {
		return err
	}
	if objVal.Obj == nil {
		return m.fault("INIT_FIELD on null object")
	}
	f, ok := objVal.Obj.Fields[fieldName]
	if !ok {
		return m.fault("field %s not found in class %s", fieldName, objVal.Obj.ClassName)
	}
	if f.DeclaredType != val.Tag.String() {
		return m.fault("field %s is %s, got %s", fieldName, f.DeclaredType, val.Tag)
	}
	if f.Present {
		return m.fault("field %s already initialized", fieldName)
	}
	f.Present = true
	f.Value = val
	return nil
}

func (m *Machine) execUpdateField(line bytecode.Line) error {
	fieldName := line.Arg(1)

	objVal, err := m.popTag(value.TagObject)
	if err != nil {
		return err
	}
	val, err := m.pop()
	if err != nil {
		return err
	}
	if objVal.Obj == nil {
		return m.fault("UPDATE_FIELD on null object")
	}
	f, ok := objVal.Obj.Fields[fieldName]
	if !ok {
		return m.fault("field %s not found in class %s", fieldName, objVal.Obj.ClassName)
	}
	if f.DeclaredType != val.Tag.String() {
		return m.fault("field %s is %s, got %s", fieldName, f.DeclaredType, val.Tag)
	}
	f.Present = true
	f.Value = val
	return nil
}

func (m *Machine) execLoadField(line bytecode.Line) error {
	fieldName := line.Arg(1)
	objVal, err := m.popTag(value.TagObject)
	if err != nil {
		return err
	}
	if objVal.Obj == nil {
		return m.fault("LOAD_FIELD on null object")
	}
	f, ok := objVal.Obj.Fields[fieldName]
	if !ok {
		return m.fault("field %s not found in class %s", fieldName, objVal.Obj.ClassName)
	}
	return m.push(f.Value)
}

func (m *Machine) execLoadThis(line bytecode.Line) error {
	if m.This == nil {
		return m.fault("LOAD_THIS used outside object context")
	}
	return m.push(*m.This)
}

func (m *Machine) execSetStaticField(line bytecode.Line) error {
	className := line.Arg(1)
	fieldName := line.Arg(2)

	val, err := m.pop()
	if err != nil {
		return err
	}
	if err := m.ensureClassLoaded(className); err != nil {
		return err
	}
	cls, _ := m.Loader.Load(className)

	sf, ok := cls.StaticFields[fieldName]
	if !ok {
		return m.fault("static field not found: %s", fieldName)
	}
	if sf.DeclaredType != val.Tag.String() {
		return m.fault("static field %s is %s, got %s", fieldName, sf.DeclaredType, val.Tag)
	}
	sf.Present = true
	sf.Value = val
	return nil
}

func (m *Machine) execLoadStaticField(line bytecode.Line) error {
	className := line.Arg(1)
	fieldName := line.Arg(2)

	if err := m.ensureClassLoaded(className); err != nil {
		return err
	}
	cls, _ := m.Loader.Load(className)

	sf, ok := cls.StaticFields[fieldName]
	if !ok {
		return m.fault("static field not found: %s", fieldName)
	}
	if !sf.Present {
		return m.fault("static field %s is uninitialized", fieldName)
	}
	return m.push(sf.Value.(value.Value))
}

func (m *Machine) execCallMethod(line bytecode.Line) error {
	methodName := line.Arg(1)
	objVal, err := m.popTag(value.TagObject)
	if err != nil {
		return err
	}
	if objVal.Obj == nil {
		return m.fault("CALL_METHOD on null object")
	}
	cls, err := m.Loader.Load(objVal.Obj.ClassName)
	if err != nil {
		return m.fault("%v", err)
	}
	label, ok := cls.Methods[methodName]
	if !ok {
		return m.fault("method %s not found in class %s", methodName, objVal.Obj.ClassName)
	}

	m.CallStack = append(m.CallStack, m.IP)
	m.pushFrame(make(Frame))
	m.This = &objVal
	return m.jumpToLabel(label)
}

func (m *Machine) execCallStaticMethod(line bytecode.Line) error {
	className := line.Arg(1)
	methodName := line.Arg(2)

	if err := m.ensureClassLoaded(className); err != nil {
		return err
	}
	cls, _ := m.Loader.Load(className)

	label, ok := cls.StaticMethods[methodName]
	if !ok {
		return m.fault("static method %s not found in class %s", methodName, className)
	}

	m.CallStack = append(m.CallStack, m.IP)
	m.pushFrame(make(Frame))
	return m.jumpToLabel(label)
}

func (m *Machine) execCallSuperMethod(line bytecode.Line) error {
	methodName := line.Arg(1)
	objVal, err := m.popTag(value.TagObject)
	if err != nil {
		return err
	}
	if objVal.Obj == nil {
		return m.fault("CALL_SUPER_METHOD on null object")
	}
	cls, err := m.Loader.Load(objVal.Obj.ClassName)
	if err != nil {
		return m.fault("%v", err)
	}
	if cls.SuperClass == "" {
		return m.fault("class %s has no superclass", objVal.Obj.ClassName)
	}
	super, err := m.Loader.Load(cls.SuperClass)
	if err != nil {
		return m.fault("%v", err)
	}
	label, ok := super.Methods[methodName]
	if !ok {
		return m.fault("method %s not found in superclass %s", methodName, cls.SuperClass)
	}

	m.CallStack = append(m.CallStack, m.IP)
	m.pushFrame(make(Frame))
	m.This = &objVal
	return m.jumpToLabel(label)
}
