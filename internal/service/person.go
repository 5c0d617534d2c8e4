package service

import (
	"errors"
	"strings"

	"github.com/esrickpics/ProyectoSSAPI/internal/models"

	"gorm.io/gorm"
)

// PersonService maintains assignable people. Contact fields are optional
// on purpose; only the identification is constrained.
type PersonService struct {
	DB *gorm.DB
}

func NewPersonService(db *gorm.DB) *PersonService {
	return &PersonService{DB: db}
}

// PersonInput carries the editable fields of a person.
type PersonInput struct {
	FirstNames     string
	LastNames      string
	Identification string
	Email          string
	Phone          string
	Position       string
	Department     string
	Active         bool
}

func (in *PersonInput) normalize() {
	in.FirstNames = strings.TrimSpace(in.FirstNames)
	in.LastNames = strings.TrimSpace(in.LastNames)
	in.Identification = strings.TrimSpace(in.Identification)
}

func (in *PersonInput) validate() error {
	if in.FirstNames == "" {
		return validationErr("nombres", "los nombres son obligatorios")
	}
	if in.LastNames == "" {
		return validationErr("apellidos", "los apellidos son obligatorios")
	}
	if in.Identification == "" {
		return validationErr("identificación", "la identificación es obligatoria")
	}
	return nil
}

func (s *PersonService) Create(in PersonInput) (*models.Person, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.Person{}).
		Where("identification = ?", in.Identification).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, validationErr("identificación", "ya existe un usuario con esa identificación")
	}

	p := models.Person{
		FirstNames:     in.FirstNames,
		LastNames:      in.LastNames,
		Identification: in.Identification,
		Email:          in.Email,
		Phone:          in.Phone,
		Position:       in.Position,
		Department:     in.Department,
		Active:         in.Active,
	}
	if err := s.DB.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PersonService) Update(id uint, in PersonInput) (*models.Person, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	var p models.Person
	if err := s.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("usuario asignado", id)
		}
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.Person{}).
		Where("identification = ? AND id <> ?", in.Identification, id).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, validationErr("identificación", "ya existe un usuario con esa identificación")
	}

	p.FirstNames = in.FirstNames
	p.LastNames = in.LastNames
	p.Identification = in.Identification
	p.Email = in.Email
	p.Phone = in.Phone
	p.Position = in.Position
	p.Department = in.Department
	p.Active = in.Active

	if err := s.DB.Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete refuses to remove a person while assets are still assigned to
// them; they must be unassigned first.
func (s *PersonService) Delete(id uint) error {
	var p models.Person
	if err := s.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundErr("usuario asignado", id)
		}
		return err
	}

	var assigned int64
	if err := s.DB.Model(&models.Asset{}).Where("person_id = ?", id).Count(&assigned).Error; err != nil {
		return err
	}
	if assigned > 0 {
		return conflictErr("no se puede eliminar a %q porque tiene activos asignados", p.FullName())
	}

	return s.DB.Delete(&p).Error
}

func (s *PersonService) Get(id uint) (*models.Person, error) {
	var p models.Person
	if err := s.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErr("usuario asignado", id)
		}
		return nil, err
	}
	return &p, nil
}

// Search lists active people, filtered by a case-insensitive substring
// across names, identification, email and position.
func (s *PersonService) Search(query string, page Page) ([]models.Person, int64, error) {
	base := s.DB.Model(&models.Person{}).Where("active = ?", true)

	query = strings.TrimSpace(query)
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		base = base.Where(
			"LOWER(first_names) LIKE ? OR LOWER(last_names) LIKE ? OR LOWER(identification) LIKE ? OR LOWER(email) LIKE ? OR LOWER(position) LIKE ?",
			like, like, like, like, like,
		)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var people []models.Person
	if err := base.Session(&gorm.Session{}).
		Order("last_names ASC, first_names ASC").
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&people).Error; err != nil {
		return nil, 0, err
	}
	return people, total, nil
}
