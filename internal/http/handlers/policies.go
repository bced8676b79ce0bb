package handlers

import (
	"net/http"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

func policyRepo() repositories.FarePolicyRepository {
	return repositories.FarePolicyRepository{DB: intconfig.DB}
}

// GET /api/fare-policies
func GetFarePolicies(c *gin.Context) {
	policies, err := policyRepo().List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, policies)
}

// GET /api/fare-policies/:id
func GetFarePolicyByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	policy, err := policyRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, policy)
}

// POST /api/fare-policies
func CreateFarePolicy(c *gin.Context) {
	var input models.FarePolicy
	if !BindJSONOrError(c, &input) {
		return
	}
	if input.Name == "" {
		RespondDomainError(c, domain.ValidationError{Field: "name", Msg: "required"})
		return
	}
	if input.BusType == "" || input.RouteType == "" {
		RespondDomainError(c, domain.ValidationError{Field: "busType", Msg: "busType and routeType are required"})
		return
	}
	if input.RatePerKm <= 0 && len(input.Brackets) == 0 {
		RespondDomainError(c, domain.ValidationError{Field: "ratePerKm", Msg: "a flat rate or distance brackets are required"})
		return
	}
	for i := 1; i < len(input.Brackets); i++ {
		if input.Brackets[i].FromKm <= input.Brackets[i-1].ToKm {
			RespondDomainError(c, domain.ValidationError{Field: "distanceBrackets", Msg: "brackets must be ordered and non-overlapping"})
			return
		}
	}
	if input.EffectiveFrom.IsZero() {
		RespondDomainError(c, domain.ValidationError{Field: "effectiveFrom", Msg: "required"})
		return
	}
	input.Active = true

	id, err := policyRepo().Create(input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	input.ID = id
	c.JSON(http.StatusCreated, input)
}

// PUT /api/fare-policies/:id/deactivate
// Policies are never edited in place; revisions are new rows and old ones are
// switched off here.
func DeactivateFarePolicy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := policyRepo().Deactivate(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	policy, err := policyRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, policy)
}
