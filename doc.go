// tokenpriv inspects and changes the security context of Windows processes.
// The library enumerates token privileges, enables/disables/removes them,
// reads and lowers mandatory integrity levels, resolves parent processes,
// and borrows the session manager's token to impersonate SYSTEM.
package tokenpriv
