package shared

import "time"

// AuditStamp carries the audit fields shared by every persisted entity.
// CreatedAt/CreatedBy never change after creation; UpdatedAt/UpdatedBy stay
// nil until the first update. Both timestamps are stamped by the application,
// so gorm's name-based auto-timestamping is switched off: without the tags
// the ORM would overwrite UpdatedAt with wall-clock time on every save.
type AuditStamp struct {
	CreatedAt time.Time  `json:"createdAt" gorm:"not null;autoCreateTime:false"`
	CreatedBy string     `json:"createdBy" gorm:"not null;size:64"`
	UpdatedAt *time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
	UpdatedBy *string    `json:"updatedBy" gorm:"size:64"`
}

// StampCreated sets the creation audit fields and clears the update fields.
func (s *AuditStamp) StampCreated(at time.Time, by string) {
	s.CreatedAt = at
	s.CreatedBy = by
	s.UpdatedAt = nil
	s.UpdatedBy = nil
}

// StampUpdated sets the update audit fields, leaving creation fields untouched.
func (s *AuditStamp) StampUpdated(at time.Time, by string) {
	t := at
	b := by
	s.UpdatedAt = &t
	s.UpdatedBy = &b
}

// InheritCreated copies the creation stamp from another entity. Used when
// child rows share their parent's lifecycle stamps.
func (s *AuditStamp) InheritCreated(from AuditStamp) {
	s.CreatedAt = from.CreatedAt
	s.CreatedBy = from.CreatedBy
}

// BaseModel is the base of entities keyed by a server-assigned integer id.
// Client-supplied ids are discarded on create.
type BaseModel struct {
	ID int `json:"id" gorm:"primaryKey;autoIncrement"`
	AuditStamp
}

// IsNew reports whether the entity has not been persisted yet.
func (m *BaseModel) IsNew() bool {
	return m.ID == 0
}

// ResetID marks the entity as unpersisted so storage will insert rather than update.
func (m *BaseModel) ResetID() {
	m.ID = 0
}

// SoftDeletableModel adds the active flag for entities that are deactivated
// instead of physically removed. Inactive rows are excluded from default reads
// and must be restored before they can be updated.
type SoftDeletableModel struct {
	BaseModel
	IsActive bool `json:"isActive" gorm:"not null;default:true"`
}

// Activate marks the entity active again.
func (m *SoftDeletableModel) Activate() {
	m.IsActive = true
}

// Deactivate marks the entity inactive.
func (m *SoftDeletableModel) Deactivate() {
	m.IsActive = false
}
