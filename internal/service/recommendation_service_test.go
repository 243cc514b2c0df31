package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"eduhub/internal/model"
)

func TestNormalizeAreas(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected []string
	}{
		{
			name:     "comma separated string",
			input:    "AI, Data Science ,  ",
			expected: []string{"ai", "data science"},
		},
		{
			name:     "string slice",
			input:    []string{"Computer Science", "AI"},
			expected: []string{"computer science", "ai"},
		},
		{
			name:     "json decoded list",
			input:    []interface{}{"Engineering", 42, "Business"},
			expected: []string{"engineering", "business"},
		},
		{
			name:     "nil input",
			input:    nil,
			expected: []string{},
		},
		{
			name:     "unsupported type",
			input:    3.14,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeAreas(tt.input))
		})
	}
}

func TestCoerceLimit(t *testing.T) {
	assert.Equal(t, DefaultRecommendationLimit, CoerceLimit(0))
	assert.Equal(t, DefaultRecommendationLimit, CoerceLimit(-5))
	assert.Equal(t, 3, CoerceLimit(3))
}

func TestRecommendationService_Recommend(t *testing.T) {
	aiProgram := model.Program{
		ID:           1,
		Name:         "MSc Artificial Intelligence",
		DegreeLevel:  "Masters",
		Mode:         "Online",
		AreaOfStudy:  "Artificial Intelligence",
		UniversityID: 10,
		Fee:          decimal.NewFromInt(20000),
	}
	bizProgram := model.Program{
		ID:           2,
		Name:         "MBA",
		DegreeLevel:  "Masters",
		Mode:         "On-campus",
		AreaOfStudy:  "Business",
		UniversityID: 11,
	}
	universities := map[uint]model.University{
		10: {ID: 10, Name: "Tech University"},
	}

	t.Run("strict filters match", func(t *testing.T) {
		mockRepo := new(MockProgramRepository)
		mockRepo.On("FindByFilters", mock.Anything, []string{"ai"}, "Masters", "Online", 10).
			Return([]model.Program{aiProgram}, nil)
		mockRepo.On("UniversitiesByIDs", mock.Anything, []uint{10}).Return(universities, nil)

		service := NewRecommendationService(mockRepo)
		results, err := service.Recommend(context.Background(), "AI", "Masters", "Online", 10)

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, "MSc Artificial Intelligence", results[0].ProgramName)
		assert.Equal(t, "Tech University", results[0].UniversityName)
	})

	t.Run("falls back to area-only filter", func(t *testing.T) {
		mockRepo := new(MockProgramRepository)
		mockRepo.On("FindByFilters", mock.Anything, []string{"ai"}, "PhD", "Online", 10).
			Return([]model.Program{}, nil)
		mockRepo.On("FindByFilters", mock.Anything, []string{"ai"}, "", "", 10).
			Return([]model.Program{aiProgram}, nil)
		mockRepo.On("UniversitiesByIDs", mock.Anything, []uint{10}).Return(universities, nil)

		service := NewRecommendationService(mockRepo)
		results, err := service.Recommend(context.Background(), "AI", "PhD", "Online", 10)

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("falls back to unfiltered head when nothing matches", func(t *testing.T) {
		mockRepo := new(MockProgramRepository)
		mockRepo.On("FindByFilters", mock.Anything, []string{"quantum"}, "PhD", "", 10).
			Return([]model.Program{}, nil)
		mockRepo.On("FindByFilters", mock.Anything, []string{"quantum"}, "", "", 10).
			Return([]model.Program{}, nil)
		mockRepo.On("ListLimit", mock.Anything, 10).
			Return([]model.Program{aiProgram, bizProgram}, nil)
		mockRepo.On("UniversitiesByIDs", mock.Anything, []uint{10, 11}).Return(universities, nil)

		service := NewRecommendationService(mockRepo)
		results, err := service.Recommend(context.Background(), "quantum", "PhD", "", 10)

		assert.NoError(t, err)
		assert.Len(t, results, 2)
		// university 11 is not in the lookup result
		assert.Equal(t, "Unknown", results[1].UniversityName)
	})

	t.Run("no criteria goes straight to strict query with empty filters", func(t *testing.T) {
		mockRepo := new(MockProgramRepository)
		mockRepo.On("FindByFilters", mock.Anything, []string{}, "", "", 10).
			Return([]model.Program{aiProgram}, nil)
		mockRepo.On("UniversitiesByIDs", mock.Anything, []uint{10}).Return(universities, nil)

		service := NewRecommendationService(mockRepo)
		results, err := service.Recommend(context.Background(), nil, "", "", 0)

		assert.NoError(t, err)
		assert.Len(t, results, 1)
		mockRepo.AssertNotCalled(t, "ListLimit", mock.Anything, mock.Anything)
	})
}
