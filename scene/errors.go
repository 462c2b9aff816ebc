package scene

import (
	"errors"
	"fmt"
)

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrStageSection    = errors.New("stage sections cannot carry seats or a ticket type")
	ErrNameRequired    = errors.New("section name is required")
	ErrDuplicateSeat   = errors.New("duplicate seat position")
	ErrDuplicateTicket = errors.New("ticket type already bound to another section")
)

// DuplicateTicketTypeBindingError: loại vé đã gắn cho một khu vực khác.
type DuplicateTicketTypeBindingError struct {
	TicketTypeId uint
	Target       SectionRef
	Holder       SectionRef
	HolderName   string
}

func (e *DuplicateTicketTypeBindingError) Error() string {
	return fmt.Sprintf("ticket type %d is already bound to section %q (%s)", e.TicketTypeId, e.HolderName, e.Holder)
}

func (e *DuplicateTicketTypeBindingError) Is(target error) bool {
	return target == ErrDuplicateTicket
}
