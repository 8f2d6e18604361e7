package repository

import (
	"svim/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

type service struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type assignment struct {
	service
	StaffID int64  `db:"staff_id" table:"staff_services"`
	Label   string `db:"label" column:"name" table:"categories"`
	Ignored string
}

func (assignment) GetJoinQuery() string {
	return "INNER JOIN staff_services ON staff_services.service_id = services.id"
}

func TestNewRepository_ColumnsAndJoin(t *testing.T) {
	repo := NewRepository[assignment]("assignment", "services", "id", nil, nil)

	assert.Equal(t, "services.id, services.name, staff_services.staff_id, categories.name AS label", repo.getSelectQuery())
	assert.Equal(t, "services.id, staff_services.staff_id", repo.getSelectQuery("id", "staff_id"))
	assert.Equal(t, "INNER JOIN staff_services ON staff_services.service_id = services.id", repo.join)
}

func TestBuildPaging(t *testing.T) {
	repo := NewRepository[service]("service", "services", "id", nil, nil)

	tests := []struct {
		name           string
		params         dto.QueryParams
		wantOrdering   string
		wantPagination string
		wantArgs       map[string]any
	}{
		{
			name:         "defaults to primary key",
			wantOrdering: "ORDER BY services.id ASC",
			wantArgs:     map[string]any{},
		},
		{
			name:           "page and limit",
			params:         dto.QueryParams{Page: 3, Limit: 20, SortBy: "services.name", SortDir: dto.SortDirDesc},
			wantOrdering:   "ORDER BY services.name DESC",
			wantPagination: "LIMIT :limit OFFSET :offset",
			wantArgs:       map[string]any{"limit": 20, "offset": 40},
		},
		{
			name:           "limit only",
			params:         dto.QueryParams{Limit: 5},
			wantOrdering:   "ORDER BY services.id ASC",
			wantPagination: "LIMIT :limit",
			wantArgs:       map[string]any{"limit": 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]any{}

			ordering, pagination := repo.buildPaging(tt.params, args)

			assert.Equal(t, tt.wantOrdering, ordering)
			assert.Equal(t, tt.wantPagination, pagination)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildWhereClause(t *testing.T) {
	repo := NewRepository[service]("service", "services", "id", nil, nil)

	where, args := repo.BuildWhereClause(dto.FilterGroup{})

	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = repo.BuildWhereClause(dto.FilterGroup{
		Filters: []any{dto.Filter{Field: "id", Value: int64(1), Operator: dto.FilterOperatorEq, Table: "services"}},
	})

	assert.Equal(t, " WHERE (services.id = :id) ", where)
	assert.Equal(t, map[string]any{"id": int64(1)}, args)
}
