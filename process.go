package tokenpriv

// PROCESS_BASIC_INFORMATION is six pointer-sized slots on every architecture:
// ExitStatus, PebBaseAddress, AffinityMask, BasePriority, UniqueProcessId,
// InheritedFromUniqueProcessId.
const (
	processBasicInformationSize = 6 * ptrSize
	parentProcessIDOffset       = 5 * ptrSize
)

func decodeParentProcessID(buf []byte) (uint32, error) {
	c := newCursor(buf)
	if err := c.skip(parentProcessIDOffset); err != nil {
		return 0, err
	}
	ppid, err := c.uintptr()
	if err != nil {
		return 0, err
	}
	return uint32(ppid), nil
}
