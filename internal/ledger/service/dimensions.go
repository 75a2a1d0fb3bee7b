package service

import "github.com/samudra-erp/backend/internal/ledger/domain"

// FieldDimensionResolver derives posting dimensions straight from the
// document's own branch/department/project fields. It is the default
// resolver; deployments with org-structure rules plug in their own.
type FieldDimensionResolver struct{}

func NewFieldDimensionResolver() *FieldDimensionResolver {
	return &FieldDimensionResolver{}
}

func (FieldDimensionResolver) Resolve(src domain.DimensionSource) domain.Dimensions {
	return domain.Dimensions{
		BranchID:     src.BranchRef(),
		DepartmentID: src.DepartmentRef(),
		ProjectID:    src.ProjectRef(),
	}
}
