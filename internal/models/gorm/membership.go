package gorm

import (
	"time"

	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/models/entities"
)

// Each scoped role owns a table keyed by (user_id, project_id). Index names are
// per table because Postgres and SQLite share one index namespace per schema.

type Administrador struct {
	ID        string    `gorm:"column:id;primaryKey;type:uuid"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_administradores_user_project,priority:1"`
	ProjectID string    `gorm:"column:project_id;type:uuid;not null;uniqueIndex:uq_administradores_user_project,priority:2;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Administrador) TableName() string { return "administradores" }

func (a Administrador) ToMembership() entities.Membership {
	return entities.Membership{
		ID: a.ID, Role: constants.RoleAdministrador, UserID: a.UserID, ProjectID: a.ProjectID,
		Attributes: entities.Attributes{},
		CreatedAt:  a.CreatedAt, UpdatedAt: a.UpdatedAt,
	}
}

func (a *Administrador) ApplyMembership(m entities.Membership) {
	a.ID, a.UserID, a.ProjectID = m.ID, m.UserID, m.ProjectID
}

type Funcionario struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid"`
	UserID      string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_funcionarios_user_project,priority:1"`
	ProjectID   string    `gorm:"column:project_id;type:uuid;not null;uniqueIndex:uq_funcionarios_user_project,priority:2;index"`
	Privilegios bool      `gorm:"column:privilegios;not null"`
	Cargo       string    `gorm:"column:cargo;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Funcionario) TableName() string { return "funcionarios" }

func (f Funcionario) ToMembership() entities.Membership {
	return entities.Membership{
		ID: f.ID, Role: constants.RoleFuncionario, UserID: f.UserID, ProjectID: f.ProjectID,
		Attributes: entities.Attributes{"privilegios": f.Privilegios, "cargo": f.Cargo},
		CreatedAt:  f.CreatedAt, UpdatedAt: f.UpdatedAt,
	}
}

func (f *Funcionario) ApplyMembership(m entities.Membership) {
	f.ID, f.UserID, f.ProjectID = m.ID, m.UserID, m.ProjectID
	f.Privilegios, _ = m.Attributes["privilegios"].(bool)
	f.Cargo, _ = m.Attributes["cargo"].(string)
}

type Voluntario struct {
	ID              string    `gorm:"column:id;primaryKey;type:uuid"`
	UserID          string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_voluntarios_user_project,priority:1"`
	ProjectID       string    `gorm:"column:project_id;type:uuid;not null;uniqueIndex:uq_voluntarios_user_project,priority:2;index"`
	AreaAtuacao     string    `gorm:"column:area_atuacao;not null"`
	Disponibilidade string    `gorm:"column:disponibilidade;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Voluntario) TableName() string { return "voluntarios" }

func (v Voluntario) ToMembership() entities.Membership {
	return entities.Membership{
		ID: v.ID, Role: constants.RoleVoluntario, UserID: v.UserID, ProjectID: v.ProjectID,
		Attributes: entities.Attributes{"area_atuacao": v.AreaAtuacao, "disponibilidade": v.Disponibilidade},
		CreatedAt:  v.CreatedAt, UpdatedAt: v.UpdatedAt,
	}
}

func (v *Voluntario) ApplyMembership(m entities.Membership) {
	v.ID, v.UserID, v.ProjectID = m.ID, m.UserID, m.ProjectID
	v.AreaAtuacao, _ = m.Attributes["area_atuacao"].(string)
	v.Disponibilidade, _ = m.Attributes["disponibilidade"].(string)
}

type Doador struct {
	ID         string    `gorm:"column:id;primaryKey;type:uuid"`
	UserID     string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_doadores_user_project,priority:1"`
	ProjectID  string    `gorm:"column:project_id;type:uuid;not null;uniqueIndex:uq_doadores_user_project,priority:2;index"`
	Frequencia string    `gorm:"column:frequencia;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Doador) TableName() string { return "doadores" }

func (d Doador) ToMembership() entities.Membership {
	return entities.Membership{
		ID: d.ID, Role: constants.RoleDoador, UserID: d.UserID, ProjectID: d.ProjectID,
		Attributes: entities.Attributes{"frequencia": d.Frequencia},
		CreatedAt:  d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func (d *Doador) ApplyMembership(m entities.Membership) {
	d.ID, d.UserID, d.ProjectID = m.ID, m.UserID, m.ProjectID
	d.Frequencia, _ = m.Attributes["frequencia"].(string)
}

// AllModels is the AutoMigrate set used by tests and local bootstrap.
func AllModels() []any {
	return []any{&User{}, &Project{}, &Administrador{}, &Funcionario{}, &Voluntario{}, &Doador{}}
}
