package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"seatmap_manager/scene"
)

var (
	ErrSaveInProgress = errors.New("a save is already in progress")
	ErrMissingID      = errors.New("server returned no id")
)

const (
	OpGetSeatMaps            = "getSeatMapsByShowingId"
	OpCreateSeatMap          = "createSeatMap"
	OpUpdateSeatMap          = "updateSeatMap"
	OpCreateSection          = "createSection"
	OpUpdateSection          = "updateSection"
	OpDeleteSection          = "deleteSection"
	OpCreateSectionAttribute = "createSectionAttribute"
	OpCreateSeatsBatch       = "createSeatsBatch"
	OpCreateSeatMapElement   = "createSeatMapElement"
	OpRefreshAfterSave       = "refreshAfterSave"
)

// PersistenceError gắn nhãn lời gọi lưu trữ bị lỗi: bước nào, khu vực nào.
type PersistenceError struct {
	Op      string
	Section string
	Ref     scene.SectionRef
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("seat map persistence: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("seat map persistence: %s %q (%s): %v", e.Op, e.Section, e.Ref, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// SaveError gom các lỗi theo từng khu vực thành một thông báo cho người dùng.
type SaveError struct {
	Failures []*PersistenceError
}

func (e *SaveError) Error() string {
	names := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		if f.Section != "" {
			names = append(names, fmt.Sprintf("%q", f.Section))
		} else {
			names = append(names, f.Op)
		}
	}
	return fmt.Sprintf("save incomplete: %d failure(s): %s", len(e.Failures), strings.Join(names, ", "))
}

func (e *SaveError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}
