package vm

// ensureClassLoaded loads cls (idempotent) and, if it declares a
// STATIC_INIT and hasn't run it yet, runs it to completion before
// returning. The "initialized" flag is set *before* entry so a static
// initialiser that transitively touches its own class's statics doesn't
// recurse into itself (spec.md §4.4).
func (m *Machine) ensureClassLoaded(name string) error {
	cls, err := m.Loader.Load(name)
	if err != nil {
		return m.fault("%v", err)
	}
	if cls.StaticInit == "" || cls.StaticInitialized {
		return nil
	}
	cls.StaticInitialized = true

	m.CallStack = append(m.CallStack, m.IP)
	m.pushFrame(make(Frame))
	depth := len(m.CallStack)

	if err := m.jumpToLabel(cls.StaticInit); err != nil {
		return err
	}

	guard := m.Config.StaticInitGuard
	for i := 0; i < guard; i++ {
		if err := m.step(); err != nil {
			return err
		}
		if len(m.CallStack) < depth {
			return nil
		}
	}
	return m.fault("static initializer for %s exceeded %d instructions without RET", name, guard)
}
