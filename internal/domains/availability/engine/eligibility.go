package engine

import (
	"context"
	"fmt"
	"svim/internal/domains/availability/model"

	"golang.org/x/sync/errgroup"
)

const DefaultEligibilityConcurrency = 4

// StaffServiceLister returns the services one staff member performs.
type StaffServiceLister interface {
	ListStaffServices(ctx context.Context, staffID int64) ([]model.Service, error)
}

// Eligibility is the roster-ordered list of staff able to perform a service.
type Eligibility struct {
	Staff     []model.Staff
	Requested model.RequestedStaff
}

type EligibilityFilter struct {
	lister      StaffServiceLister
	concurrency int
}

func NewEligibilityFilter(lister StaffServiceLister, concurrency int) *EligibilityFilter {
	if concurrency <= 0 {
		concurrency = DefaultEligibilityConcurrency
	}

	return &EligibilityFilter{
		lister:      lister,
		concurrency: concurrency,
	}
}

// Filter keeps the roster members whose own service list contains serviceID.
// A requested staff member is tested alone first. If they are absent from the roster or cannot
// perform the service, the rest of the roster is tested and Requested says why.
// Any lister failure aborts the whole filter.
func (f *EligibilityFilter) Filter(ctx context.Context, roster []model.Staff, serviceID int64, requestedID *int64) (Eligibility, error) {
	candidates := roster
	status := model.RequestedStaffNone

	if requestedID != nil {
		status = model.RequestedStaffNotFound

		for i, staff := range roster {
			if staff.ID != *requestedID {
				continue
			}

			ok, err := f.offers(ctx, staff.ID, serviceID)
			if err != nil {
				return Eligibility{}, err
			}

			if ok {
				return Eligibility{Staff: []model.Staff{staff}, Requested: model.RequestedStaffEligible}, nil
			}

			status = model.RequestedStaffIneligible
			candidates = append(append([]model.Staff(nil), roster[:i]...), roster[i+1:]...)

			break
		}
	}

	eligible, err := f.scan(ctx, candidates, serviceID)
	if err != nil {
		return Eligibility{}, err
	}

	return Eligibility{Staff: eligible, Requested: status}, nil
}

// scan tests candidates concurrently and merges the verdicts back in roster order.
func (f *EligibilityFilter) scan(ctx context.Context, candidates []model.Staff, serviceID int64) ([]model.Staff, error) {
	verdicts := make([]bool, len(candidates))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(f.concurrency)

	for i, staff := range candidates {
		group.Go(func() error {
			ok, err := f.offers(groupCtx, staff.ID, serviceID)
			if err != nil {
				return err
			}

			verdicts[i] = ok

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	eligible := []model.Staff{}
	for i, ok := range verdicts {
		if ok {
			eligible = append(eligible, candidates[i])
		}
	}

	return eligible, nil
}

func (f *EligibilityFilter) offers(ctx context.Context, staffID, serviceID int64) (bool, error) {
	services, err := f.lister.ListStaffServices(ctx, staffID)
	if err != nil {
		return false, fmt.Errorf("listing services of staff %d: %w", staffID, err)
	}

	for _, service := range services {
		if service.ID == serviceID {
			return true, nil
		}
	}

	return false, nil
}
