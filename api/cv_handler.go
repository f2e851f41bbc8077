package api

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arcfolio/backend/database"
	"github.com/arcfolio/backend/errs"
	"github.com/arcfolio/backend/models"
	"github.com/arcfolio/backend/pdf"
	"github.com/arcfolio/backend/render"
)

type cvHandler struct {
	responder Responder
	logger    zerolog.Logger
	cvRepo    *database.CVRepo
	projector *render.Projector
	generator *pdf.Generator
}

func newCVHandler(cvRepo *database.CVRepo, projector *render.Projector, generator *pdf.Generator) cvHandler {
	logger := log.With().Str("handlerName", "cvHandler").Logger()

	return cvHandler{
		responder: NewResponder(logger),
		logger:    logger,
		cvRepo:    cvRepo,
		projector: projector,
		generator: generator,
	}
}

var (
	skillCategoryRule = "oneof=" + strings.Join([]string{
		models.SkillCategorySoftware, models.SkillCategoryTechnical,
		models.SkillCategoryDesign, models.SkillCategoryManagement,
		models.SkillCategoryCommunication, models.SkillCategoryOther,
	}, " ")
	proficiencyRule = "oneof=" + strings.Join([]string{
		models.ProficiencyBasic, models.ProficiencyIntermediate,
		models.ProficiencyAdvanced, models.ProficiencyExpert,
	}, " ")
)

// getPersonalInfo retrieves the profile record
func (h cvHandler) getPersonalInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := h.cvRepo.PersonalInfo()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "personal info", err))
			return
		}
		if info == nil {
			h.responder.WriteError(w, errs.NewNotFound("personal info"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, info)
	}
}

// updatePersonalInfo updates the profile record
func (h cvHandler) updatePersonalInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		existing, err := h.cvRepo.PersonalInfo()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "personal info", err))
			return
		}

		var info models.PersonalInfo
		if err := decodeBody(r, &info); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		switch {
		case info.Name == "":
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("validation failed", "name", "is required"))
			return
		case info.ProfessionalTitle == "":
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("validation failed", "professionalTitle", "is required"))
			return
		}
		if err := checkVar(info.Email, "required,email", "email"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if existing != nil {
			info.ID = existing.ID
		}
		if err := h.cvRepo.SavePersonalInfo(&info); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "personal info", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, info)
	}
}

// getExperiences retrieves all experience entries in display order
func (h cvHandler) getExperiences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experiences, err := h.cvRepo.Experiences()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "experiences", err))
			return
		}
		if experiences == nil {
			experiences = []*models.CVExperience{}
		}
		h.responder.WriteData(w, http.StatusOK, experiences)
	}
}

// createExperience creates a new experience entry
func (h cvHandler) createExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var experience models.CVExperience
		if err := decodeBody(r, &experience); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateExperience(&experience); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.cvRepo.AddExperience(&experience); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "experience", err))
			return
		}

		h.responder.WriteData(w, http.StatusCreated, experience)
	}
}

// updateExperience updates an existing experience entry
func (h cvHandler) updateExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experienceID, err := parseID(r, "experienceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.cvRepo.FindExperience(experienceID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "experience", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFound("experience"))
			return
		}

		var experience models.CVExperience
		if err := decodeBody(r, &experience); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateExperience(&experience); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		experience.ID = experienceID
		experience.CreatedAt = existing.CreatedAt
		if err := h.cvRepo.UpdateExperience(&experience); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "experience", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, experience)
	}
}

// deleteExperience deletes an experience entry
func (h cvHandler) deleteExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experienceID, err := parseID(r, "experienceID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.cvRepo.FindExperience(experienceID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "experience", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFound("experience"))
			return
		}

		if err := h.cvRepo.DeleteExperience(experienceID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "experience", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, map[string]string{
			"message": "experience deleted",
		})
	}
}

// getEducation retrieves all education entries in display order
func (h cvHandler) getEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		education, err := h.cvRepo.Education()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "education", err))
			return
		}
		if education == nil {
			education = []*models.CVEducation{}
		}
		h.responder.WriteData(w, http.StatusOK, education)
	}
}

// createEducation creates a new education entry
func (h cvHandler) createEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var education models.CVEducation
		if err := decodeBody(r, &education); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateEducation(&education); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.cvRepo.AddEducation(&education); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "education", err))
			return
		}

		h.responder.WriteData(w, http.StatusCreated, education)
	}
}

// updateEducation updates an existing education entry
func (h cvHandler) updateEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		educationID, err := parseID(r, "educationID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.cvRepo.FindEducation(educationID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "education", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFound("education"))
			return
		}

		var education models.CVEducation
		if err := decodeBody(r, &education); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateEducation(&education); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		education.ID = educationID
		education.CreatedAt = existing.CreatedAt
		if err := h.cvRepo.UpdateEducation(&education); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "education", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, education)
	}
}

// deleteEducation deletes an education entry
func (h cvHandler) deleteEducation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		educationID, err := parseID(r, "educationID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.cvRepo.FindEducation(educationID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "education", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFound("education"))
			return
		}

		if err := h.cvRepo.DeleteEducation(educationID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "education", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, map[string]string{
			"message": "education deleted",
		})
	}
}

// getSkills retrieves all skills ordered by category then display order
func (h cvHandler) getSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.cvRepo.Skills()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skills", err))
			return
		}
		if skills == nil {
			skills = []*models.CVSkill{}
		}
		h.responder.WriteData(w, http.StatusOK, skills)
	}
}

// createSkill creates a new skill entry
func (h cvHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var skill models.CVSkill
		if err := decodeBody(r, &skill); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateSkill(&skill); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.cvRepo.AddSkill(&skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "skill", err))
			return
		}

		h.responder.WriteData(w, http.StatusCreated, skill)
	}
}

// updateSkill updates an existing skill entry
func (h cvHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, err := parseID(r, "skillID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.cvRepo.FindSkill(skillID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skill", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFound("skill"))
			return
		}

		var skill models.CVSkill
		if err := decodeBody(r, &skill); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateSkill(&skill); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill.ID = skillID
		skill.CreatedAt = existing.CreatedAt
		if err := h.cvRepo.UpdateSkill(&skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "skill", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, skill)
	}
}

// deleteSkill deletes a skill entry
func (h cvHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, err := parseID(r, "skillID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.cvRepo.FindSkill(skillID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skill", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFound("skill"))
			return
		}

		if err := h.cvRepo.DeleteSkill(skillID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "skill", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, map[string]string{
			"message": "skill deleted",
		})
	}
}

// getAll retrieves the complete CV dataset in one call
func (h cvHandler) getAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := h.cvRepo.PersonalInfo()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "personal info", err))
			return
		}
		experiences, err := h.cvRepo.Experiences()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "experiences", err))
			return
		}
		education, err := h.cvRepo.Education()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "education", err))
			return
		}
		skills, err := h.cvRepo.Skills()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skills", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, map[string]any{
			"personalInfo": info,
			"experiences":  experiences,
			"education":    education,
			"skills":       skills,
		})
	}
}

// getRenderable retrieves the print-ready CV projection
func (h cvHandler) getRenderable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := h.projector.BuildCV()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("build", "CV document", err))
			return
		}
		h.responder.WriteData(w, http.StatusOK, doc)
	}
}

// generatePDF exports the CV as a PDF file
func (h cvHandler) generatePDF() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := h.generator.GenerateCV(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, result)
	}
}

func validateExperience(e *models.CVExperience) error {
	switch {
	case e.CompanyName == "":
		return errs.NewBadRequestErrorWithField("validation failed", "companyName", "is required")
	case e.PositionTitle == "":
		return errs.NewBadRequestErrorWithField("validation failed", "positionTitle", "is required")
	case e.StartDate.IsZero():
		return errs.NewBadRequestErrorWithField("validation failed", "startDate", "is required")
	case !e.IsCurrent && e.EndDate == nil:
		return errs.NewBadRequestErrorWithField("validation failed", "endDate", "is required unless isCurrent is set")
	}
	return nil
}

func validateEducation(e *models.CVEducation) error {
	switch {
	case e.InstitutionName == "":
		return errs.NewBadRequestErrorWithField("validation failed", "institutionName", "is required")
	case e.DegreeType == "":
		return errs.NewBadRequestErrorWithField("validation failed", "degreeType", "is required")
	case e.StartDate.IsZero():
		return errs.NewBadRequestErrorWithField("validation failed", "startDate", "is required")
	}
	return nil
}

func validateSkill(s *models.CVSkill) error {
	if s.SkillName == "" {
		return errs.NewBadRequestErrorWithField("validation failed", "skillName", "is required")
	}
	if err := checkVar(s.Category, skillCategoryRule, "category"); err != nil {
		return err
	}
	return checkVar(s.ProficiencyLevel, proficiencyRule, "proficiencyLevel")
}
