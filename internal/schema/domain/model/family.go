package model

import (
	"fmt"

	apperrors "sheltercms/internal/shared/errors"
)

// Family identifies one record domain. Each family has its own section
// catalog and record tree in the store; all families share the same engine,
// parameterized by FamilyPolicy.
type Family string

const (
	// FamilyPetHealth holds per-pet health records (vaccinations, weight
	// checks, surgeries). Records are scoped to an owning pet.
	FamilyPetHealth Family = "pet-health"

	// FamilyAdoption holds adoption and intake records scoped to the whole
	// project, with no owning entity.
	FamilyAdoption Family = "adoption"
)

// FamilyPolicy captures the per-family behavior differences that used to be
// hard-coded into separate engine copies.
type FamilyPolicy struct {
	// OwnerScoped requires every record to carry an owner ID (e.g. a pet).
	OwnerScoped bool `json:"ownerScoped"`

	// UniqueSectionNames rejects saving a section whose name matches another
	// section in the same project case-insensitively.
	UniqueSectionNames bool `json:"uniqueSectionNames"`

	// CascadeSectionDelete deletes a section's columns and records together
	// with the section, inside one store transaction. When false, deleting a
	// section leaves its columns and records as unreachable-but-persisted
	// orphans.
	CascadeSectionDelete bool `json:"cascadeSectionDelete"`
}

// FamilyRegistry maps families to their policies.
type FamilyRegistry struct {
	policies map[Family]FamilyPolicy
}

// NewFamilyRegistry returns a registry preloaded with the builtin families
// and their default policies. Defaults preserve the historically observed
// behavior: pet-health enforces unique names, adoption does not, and neither
// cascades deletes.
func NewFamilyRegistry() *FamilyRegistry {
	return &FamilyRegistry{
		policies: map[Family]FamilyPolicy{
			FamilyPetHealth: {OwnerScoped: true, UniqueSectionNames: true},
			FamilyAdoption:  {OwnerScoped: false, UniqueSectionNames: false},
		},
	}
}

// Register adds or replaces a family policy.
func (r *FamilyRegistry) Register(family Family, policy FamilyPolicy) {
	if r.policies == nil {
		r.policies = make(map[Family]FamilyPolicy)
	}
	r.policies[family] = policy
}

// Policy returns the policy for a family.
func (r *FamilyRegistry) Policy(family Family) (FamilyPolicy, error) {
	policy, ok := r.policies[family]
	if !ok {
		return FamilyPolicy{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownFamily, family)
	}
	return policy, nil
}

// Families returns the registered family names.
func (r *FamilyRegistry) Families() []Family {
	families := make([]Family, 0, len(r.policies))
	for f := range r.policies {
		families = append(families, f)
	}
	return families
}
