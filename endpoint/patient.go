package endpoint

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinica/patients-api/model"
	"github.com/clinica/patients-api/util"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
	maxPatientAge    = 120
	maxNameLength    = 100
)

type createPatientRequest struct {
	Name     string   `json:"name" example:"Juan Pérez"`
	Age      *int     `json:"age" example:"35"`
	Symptoms []string `json:"symptoms" example:"fiebre,tos"`
}

type updatePatientRequest struct {
	Name     *string   `json:"name"`
	Age      *int      `json:"age"`
	Symptoms *[]string `json:"symptoms"`
}

func validatePatientName(name string) (string, error) {
	name = util.NormalizeName(name)
	if name == "" {
		return "", fmt.Errorf("name cannot be empty")
	}
	if len(name) > maxNameLength {
		return "", fmt.Errorf("name cannot exceed %d characters", maxNameLength)
	}
	return name, nil
}

func validatePatientAge(age int) error {
	if age < 0 || age > maxPatientAge {
		return fmt.Errorf("age must be between 0 and %d", maxPatientAge)
	}
	return nil
}

// cleanSymptoms trims each entry and drops empty ones, preserving order.
func cleanSymptoms(symptoms []string) model.StringList {
	cleaned := make(model.StringList, 0, len(symptoms))
	for _, s := range symptoms {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

func parsePatientID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("patient ID must be a positive integer")
	}
	return uint(id), nil
}

// CreatePatient godoc
// @Summary      Create a patient
// @Description  Register a patient record with name, age, and symptom list
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body createPatientRequest true "Patient details"
// @Success      201 {object} util.APIResponse{data=model.Patient} "Patient created"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      422 {object} util.APIResponse "Invalid patient payload"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients [post]
func CreatePatient(c *gin.Context) {
	var req createPatientRequest
	if !bindOrRespond(c, &req) {
		return
	}

	name, err := validatePatientName(req.Name)
	if err != nil {
		util.CallValidationError(c, util.APIErrorParams{Msg: err.Error(), Err: err})
		return
	}
	if req.Age == nil {
		err := fmt.Errorf("age is required")
		util.CallValidationError(c, util.APIErrorParams{Msg: err.Error(), Err: err})
		return
	}
	if err := validatePatientAge(*req.Age); err != nil {
		util.CallValidationError(c, util.APIErrorParams{Msg: err.Error(), Err: err})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	patient := model.Patient{
		Name:     name,
		Age:      *req.Age,
		Symptoms: cleanSymptoms(req.Symptoms),
	}
	if err := db.Create(&patient).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create patient", Err: err})
		return
	}

	util.CallSuccessCreated(c, util.APISuccessParams{Msg: "Patient created", Data: patient})
}

// GetPatient godoc
// @Summary      Get a patient
// @Description  Retrieve a patient record by ID
// @Tags         Patient
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/{id} [get]
func GetPatient(c *gin.Context) {
	id, err := parsePatientID(c)
	if err != nil {
		util.CallValidationError(c, util.APIErrorParams{Msg: err.Error(), Err: err})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var patient model.Patient
	if err := db.First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Patient not found", Err: err})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve patient", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patient retrieved", Data: patient})
}

// UpdatePatient godoc
// @Summary      Update a patient
// @Description  Update any subset of a patient's name, age, and symptoms; omitted fields are kept
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Patient ID"
// @Param        request body updatePatientRequest true "Fields to update"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient updated"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      422 {object} util.APIResponse "Invalid patient payload"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/{id} [put]
func UpdatePatient(c *gin.Context) {
	id, err := parsePatientID(c)
	if err != nil {
		util.CallValidationError(c, util.APIErrorParams{Msg: err.Error(), Err: err})
		return
	}

	var req updatePatientRequest
	if !bindOrRespond(c, &req) {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var patient model.Patient
	if err := db.First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Patient not found", Err: err})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve patient", Err: err})
		return
	}

	if req.Name != nil {
		name, err := validatePatientName(*req.Name)
		if err != nil {
			util.CallValidationError(c, util.APIErrorParams{Msg: err.Error(), Err: err})
			return
		}
		patient.Name = name
	}
	if req.Age != nil {
		if err := validatePatientAge(*req.Age); err != nil {
			util.CallValidationError(c, util.APIErrorParams{Msg: err.Error(), Err: err})
			return
		}
		patient.Age = *req.Age
	}
	if req.Symptoms != nil {
		patient.Symptoms = cleanSymptoms(*req.Symptoms)
	}

	if err := db.Save(&patient).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update patient", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Patient updated", Data: patient})
}

// DeletePatient godoc
// @Summary      Delete a patient
// @Description  Remove a patient record by ID
// @Tags         Patient
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Patient ID"
// @Success      204 "Patient deleted"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/{id} [delete]
func DeletePatient(c *gin.Context) {
	id, err := parsePatientID(c)
	if err != nil {
		util.CallValidationError(c, util.APIErrorParams{Msg: err.Error(), Err: err})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	result := db.Delete(&model.Patient{}, id)
	if result.Error != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to delete patient", Err: result.Error})
		return
	}
	if result.RowsAffected == 0 {
		err := fmt.Errorf("patient %d not found", id)
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Patient not found", Err: err})
		return
	}

	c.Status(http.StatusNoContent)
}

type patientListQuery struct {
	Name    string
	MinAge  *int
	MaxAge  *int
	Symptom string
	Offset  int
	Limit   int
}

func parseListQuery(c *gin.Context) (patientListQuery, error) {
	q := patientListQuery{
		Name:    c.Query("name"),
		Symptom: c.Query("symptom"),
		Limit:   defaultListLimit,
	}

	for _, bound := range []struct {
		param string
		dst   **int
	}{
		{"min_age", &q.MinAge},
		{"max_age", &q.MaxAge},
	} {
		v := c.Query(bound.param)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxPatientAge {
			return q, fmt.Errorf("%s must be an integer between 0 and %d", bound.param, maxPatientAge)
		}
		*bound.dst = &n
	}

	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return q, fmt.Errorf("offset must be a non-negative integer")
		}
		q.Offset = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxListLimit {
			return q, fmt.Errorf("limit must be an integer between 1 and %d", maxListLimit)
		}
		q.Limit = n
	}
	return q, nil
}

// buildPatientFilters applies the conjunctive list filters. Name matching is
// a case-insensitive substring; symptom matching is exact element membership
// against the JSON-encoded symptom list.
func buildPatientFilters(db *gorm.DB, q patientListQuery) *gorm.DB {
	query := db.Model(&model.Patient{})
	if q.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q.Name)+"%")
	}
	if q.MinAge != nil {
		query = query.Where("age >= ?", *q.MinAge)
	}
	if q.MaxAge != nil {
		query = query.Where("age <= ?", *q.MaxAge)
	}
	if q.Symptom != "" {
		query = query.Where("symptoms LIKE ?", `%"`+q.Symptom+`"%`)
	}
	return query
}

func fetchPatients(db *gorm.DB, q patientListQuery) ([]model.Patient, int64, error) {
	var total int64
	if err := buildPatientFilters(db, q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	patients := make([]model.Patient, 0, q.Limit)
	err := buildPatientFilters(db, q).
		Order("id ASC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&patients).Error
	if err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

// ListPatients godoc
// @Summary      List patients
// @Description  Get a filtered, paginated patient list ordered by ID ascending
// @Tags         Patient
// @Produce      json
// @Security     BearerAuth
// @Param        name query string false "Case-insensitive name substring"
// @Param        min_age query int false "Minimum age, inclusive (0-120)"
// @Param        max_age query int false "Maximum age, inclusive (0-120)"
// @Param        symptom query string false "Exact symptom membership"
// @Param        offset query int false "Matches to skip (default 0)"
// @Param        limit query int false "Page size (default 100, max 1000)"
// @Success      200 {object} util.APIResponse{data=object} "Patients retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      422 {object} util.APIResponse "Invalid filter or pagination value"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients [get]
func ListPatients(c *gin.Context) {
	q, err := parseListQuery(c)
	if err != nil {
		util.CallValidationError(c, util.APIErrorParams{Msg: err.Error(), Err: err})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	patients, total, err := fetchPatients(db, q)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to retrieve patients", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Patients retrieved",
		Data: map[string]interface{}{
			"patients":    patients,
			"total_count": total,
			"offset":      q.Offset,
			"limit":       q.Limit,
			"has_more":    int64(q.Offset+q.Limit) < total,
		},
	})
}
