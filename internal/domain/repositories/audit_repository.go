package repositories

// AuditRepository routes log entries of one hook invocation to the audit log.
type AuditRepository interface {
	// Attach starts appending entries for hookName to path. The returned
	// function detaches it again.
	Attach(path, hookName string) (detach func(), err error)
}
