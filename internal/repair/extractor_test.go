package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bsplan/pkg/contracts/domain"
)

// exportHeader is the column order of a real BetterStreet export.
var exportHeader = []string{
	"ID",
	"Description",
	"Catégorie",
	"Créé le",
	"Bâtiment/Équipement",
	"Adresse",
	"Échéance",
	"Début planification",
	"Fin planification",
	"Agents/Équipes",
	"Consigne",
}

func TestExtractor_Aligned(t *testing.T) {
	shortHeader := []string{
		"ID", "Description", "Catégorie", "Créé le", "Échéance",
		"Début planification", "Fin planification", "Agents/Équipes", "Consigne",
	}

	testCases := []struct {
		name     string
		header   []string
		record   string
		expected domain.FieldMap
	}{
		{
			name:   "FullRow",
			header: shortHeader,
			record: "BE-1001-;Fuite toiture;Voirie;15-03-25;20-03-25;15-03-25 07:30;15-03-25 19:45;Equipe A;Vérifier vanne",
			expected: domain.FieldMap{
				domain.FieldID:          "BE-1001-",
				domain.FieldDescription: "Fuite toiture",
				domain.FieldCategory:    "Voirie",
				domain.FieldCreated:     "15-03-25",
				domain.FieldDue:         "20-03-25",
				domain.FieldStart:       "15-03-25 07:30",
				domain.FieldEnd:         "15-03-25 19:45",
				domain.FieldAgents:      "Equipe A",
				domain.FieldInstruction: "Vérifier vanne",
			},
		},
		{
			name:   "EmptyCellsStayAbsent",
			header: shortHeader,
			record: "BE-1002-;Porte cassée;;12-03-25;;16-03-25 09:00;16-03-25 11:30;Equipe B;",
			expected: domain.FieldMap{
				domain.FieldID:          "BE-1002-",
				domain.FieldDescription: "Porte cassée",
				domain.FieldCreated:     "12-03-25",
				domain.FieldStart:       "16-03-25 09:00",
				domain.FieldEnd:         "16-03-25 11:30",
				domain.FieldAgents:      "Equipe B",
			},
		},
		{
			name:   "PositionalValuesNotValidated",
			header: exportHeader,
			record: "BE-1003-;Fuite;Voirie;pas-une-date;Mairie;pas une adresse;20-03-25;15-03-25 07:30;15-03-25 19:45;Equipe A;RAS",
			expected: domain.FieldMap{
				domain.FieldID:          "BE-1003-",
				domain.FieldDescription: "Fuite",
				domain.FieldCategory:    "Voirie",
				domain.FieldCreated:     "pas-une-date",
				domain.FieldBuilding:    "Mairie",
				domain.FieldAddress:     "pas une adresse",
				domain.FieldDue:         "20-03-25",
				domain.FieldStart:       "15-03-25 07:30",
				domain.FieldEnd:         "15-03-25 19:45",
				domain.FieldAgents:      "Equipe A",
				domain.FieldInstruction: "RAS",
			},
		},
		{
			name:   "QuotedIDNormalized",
			header: []string{"ID", "Description"},
			record: `"BE-1004-";Fuite toiture`,
			expected: domain.FieldMap{
				domain.FieldID:          "BE-1004-",
				domain.FieldDescription: "Fuite toiture",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			extractor := NewExtractor(tc.header, ";", DefaultAnchorOffsets())

			ex, err := extractor.Extract(tc.record)
			require.NoError(t, err)

			assert.Equal(t, domain.MappingAligned, ex.Mode)
			assert.Equal(t, tc.expected, ex.Fields)
		})
	}
}

func TestExtractor_Heuristic(t *testing.T) {
	testCases := []struct {
		name     string
		record   string
		expected domain.FieldMap
	}{
		{
			name:   "EmbeddedDelimiterInDescription",
			record: "BE-2002-;Fuite toiture; urgence;Voirie;15-03-25;Salle des fêtes;Rue de la Gare 12;20-03-25;15-03-25 07:30;15-03-25 19:45;Equipe A;Vérifier la vanne",
			expected: domain.FieldMap{
				domain.FieldID:          "BE-2002-",
				domain.FieldDescription: "Fuite toiture;urgence",
				domain.FieldCategory:    "Voirie",
				domain.FieldCreated:     "15-03-25",
				domain.FieldBuilding:    "Salle des fêtes",
				domain.FieldAddress:     "Rue de la Gare 12",
				domain.FieldDue:         "20-03-25",
				domain.FieldStart:       "15-03-25 07:30",
				domain.FieldEnd:         "15-03-25 19:45",
				domain.FieldAgents:      "Equipe A",
				domain.FieldInstruction: "Vérifier la vanne",
			},
		},
		{
			name:   "AgentsFoundAfterDueWhenPlanningEmpty",
			record: "BE-7007-;Tonte; pelouse;Espaces verts;10-03-25;Cimetière;Avenue du Parc 2;20-03-25;;;Equipe B;Ramasser les feuilles",
			expected: domain.FieldMap{
				domain.FieldID:          "BE-7007-",
				domain.FieldDescription: "Tonte;pelouse",
				domain.FieldCategory:    "Espaces verts",
				domain.FieldCreated:     "10-03-25",
				domain.FieldBuilding:    "Cimetière",
				domain.FieldAddress:     "Avenue du Parc 2",
				domain.FieldDue:         "20-03-25",
				domain.FieldAgents:      "Equipe B",
				domain.FieldInstruction: "Ramasser les feuilles",
			},
		},
		{
			name:   "DatesWithoutTimestamps",
			record: "BE-3003-;Désherbage;10-03-25;12-03-25",
			expected: domain.FieldMap{
				domain.FieldID:          "BE-3003-",
				domain.FieldDescription: "Désherbage",
				domain.FieldCategory:    "Désherbage",
				domain.FieldBuilding:    "Désherbage",
				domain.FieldCreated:     "10-03-25",
				domain.FieldDue:         "12-03-25",
			},
		},
		{
			name:   "SingleTimestampAssignsNeitherBound",
			record: "BE-4004-;Contrôle;15-03-25 08:00",
			expected: domain.FieldMap{
				domain.FieldID:          "BE-4004-",
				domain.FieldDescription: "Contrôle",
			},
		},
		{
			name:   "AddressFoundByScanWithoutDueAnchor",
			record: "BE-5005-;desc;Rue Haute 45;15-03-25 08:00;15-03-25 09:00;Equipe",
			expected: domain.FieldMap{
				domain.FieldID:          "BE-5005-",
				domain.FieldDescription: "desc",
				domain.FieldAddress:     "Rue Haute 45",
				domain.FieldStart:       "15-03-25 08:00",
				domain.FieldEnd:         "15-03-25 09:00",
				domain.FieldAgents:      "Equipe",
			},
		},
		{
			name:   "BuildingScannedBackwardFromAddress",
			record: "BE-6006-;fuite;Mairie;Rue Haute 45;15-03-25 08:00;15-03-25 09:00;Equipe A;RAS",
			expected: domain.FieldMap{
				domain.FieldID:          "BE-6006-",
				domain.FieldDescription: "fuite",
				domain.FieldBuilding:    "Mairie",
				domain.FieldAddress:     "Rue Haute 45",
				domain.FieldStart:       "15-03-25 08:00",
				domain.FieldEnd:         "15-03-25 09:00",
				domain.FieldAgents:      "Equipe A",
				domain.FieldInstruction: "RAS",
			},
		},
		{
			name:   "LastTimestampsWinWhenMoreThanTwo",
			record: "BE-9009-;Relevé;01-03-25 08:00;02-03-25 08:00;03-03-25 08:00",
			expected: domain.FieldMap{
				domain.FieldID:          "BE-9009-",
				domain.FieldDescription: "Relevé",
				domain.FieldStart:       "02-03-25 08:00",
				domain.FieldEnd:         "03-03-25 08:00",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			extractor := NewExtractor(exportHeader, ";", DefaultAnchorOffsets())

			ex, err := extractor.Extract(tc.record)
			require.NoError(t, err)

			assert.Equal(t, domain.MappingHeuristic, ex.Mode)
			assert.Equal(t, tc.expected, ex.Fields)
		})
	}
}

func TestExtractor_MalformedRecord(t *testing.T) {
	testCases := []struct {
		name   string
		record string
	}{
		{name: "FreeTextFirstToken", record: "Description;Voirie;15-03-25"},
		{name: "EmptyRecord", record: ""},
		{name: "DelimiterOnly", record: ";;;"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			extractor := NewExtractor(exportHeader, ";", DefaultAnchorOffsets())

			_, err := extractor.Extract(tc.record)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestExtractor_AnchorOffsets(t *testing.T) {
	t.Run("CustomAgentsOffset", func(t *testing.T) {
		offsets := AnchorOffsets{
			AgentsAfterDue:     2,
			AddressBeforeDue:   1,
			BuildingBeforeDue:  2,
			BuildingScanWindow: 7,
		}
		extractor := NewExtractor(exportHeader, ";", offsets)

		ex, err := extractor.Extract("BE-8008-;X;10-03-25;12-03-25;;Equipe C")
		require.NoError(t, err)

		agents, ok := ex.Fields.Get(domain.FieldAgents)
		require.True(t, ok)
		assert.Equal(t, "Equipe C", agents)
	})

	t.Run("DefaultOffsetsMissTheSameRow", func(t *testing.T) {
		extractor := NewExtractor(exportHeader, ";", DefaultAnchorOffsets())

		ex, err := extractor.Extract("BE-8008-;X;10-03-25;12-03-25;;Equipe C")
		require.NoError(t, err)

		_, ok := ex.Fields.Get(domain.FieldAgents)
		assert.False(t, ok)
	})

	t.Run("InvalidOffsetsFallBackToDefaults", func(t *testing.T) {
		extractor := NewExtractor(exportHeader, ";", AnchorOffsets{})

		ex, err := extractor.Extract("BE-7007-;Tonte; pelouse;Espaces verts;10-03-25;Cimetière;Avenue du Parc 2;20-03-25;;;Equipe B;Ramasser")
		require.NoError(t, err)

		require.Equal(t, domain.MappingHeuristic, ex.Mode)
		agents, ok := ex.Fields.Get(domain.FieldAgents)
		require.True(t, ok)
		assert.Equal(t, "Equipe B", agents)
	})

	t.Run("IsValid", func(t *testing.T) {
		assert.True(t, DefaultAnchorOffsets().IsValid())
		assert.False(t, AnchorOffsets{}.IsValid())
		assert.False(t, AnchorOffsets{AgentsAfterDue: -1, AddressBeforeDue: 1, BuildingBeforeDue: 2, BuildingScanWindow: 7}.IsValid())
	})
}
