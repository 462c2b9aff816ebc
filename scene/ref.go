package scene

import (
	"fmt"

	"github.com/google/uuid"
)

// SectionRef định danh một khu vực: Persisted{id} khi server đã cấp id,
// Draft{tempId} khi mới tạo trên trình soạn. Không suy đoán từ "hình dạng" id.
type SectionRef struct {
	id    uint
	draft string
}

func Persisted(id uint) SectionRef {
	return SectionRef{id: id}
}

func Draft(tempID string) SectionRef {
	return SectionRef{draft: tempID}
}

func NewDraft() SectionRef {
	return Draft(uuid.NewString())
}

func (r SectionRef) IsDraft() bool {
	return r.draft != ""
}

func (r SectionRef) IsZero() bool {
	return r.id == 0 && r.draft == ""
}

// ID trả về id server; ok=false với bản nháp.
func (r SectionRef) ID() (uint, bool) {
	if r.IsDraft() || r.id == 0 {
		return 0, false
	}
	return r.id, true
}

func (r SectionRef) TempID() string {
	return r.draft
}

func (r SectionRef) String() string {
	if r.IsDraft() {
		return "draft:" + r.draft
	}
	return fmt.Sprintf("section:%d", r.id)
}
