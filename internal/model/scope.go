package model

type ScopeKind string

const (
	ScopeModule    ScopeKind = "module"
	ScopeSubModule ScopeKind = "subModule"
)

// Scope is the immediate parent owning a lesson or quiz: a module or a submodule, never both.
type Scope struct {
	Kind ScopeKind `json:"kind"`
	ID   string    `json:"id"`
}

func ModuleScope(id string) Scope {
	return Scope{Kind: ScopeModule, ID: id}
}

func SubModuleScope(id string) Scope {
	return Scope{Kind: ScopeSubModule, ID: id}
}

func (s Scope) IsZero() bool {
	return s.ID == ""
}

// Placement is a resolved scope with its denormalized ancestors.
type Placement struct {
	Scope       Scope
	CourseID    string
	ModuleID    string
	SubModuleID *string
}

// ScopedRefs is embedded by content items that live inside a Scope.
type ScopedRefs struct {
	CourseID    string  `gorm:"type:varchar(36);index;not null" json:"courseId"`
	ModuleID    string  `gorm:"type:varchar(36);index;not null" json:"moduleId"`
	SubModuleID *string `gorm:"type:varchar(36);index" json:"subModuleId"`
}

func (s ScopedRefs) Scope() Scope {
	if s.SubModuleID != nil && *s.SubModuleID != "" {
		return SubModuleScope(*s.SubModuleID)
	}
	return ModuleScope(s.ModuleID)
}

func (s *ScopedRefs) Place(p Placement) {
	s.CourseID = p.CourseID
	s.ModuleID = p.ModuleID
	s.SubModuleID = p.SubModuleID
}
