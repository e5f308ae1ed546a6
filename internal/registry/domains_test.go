package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArthurBonsu/ledgerflow/internal/domain"
)

func TestLookupKnownDomains(t *testing.T) {
	for _, name := range Names() {
		def, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, def.Name)
		assert.NotEmpty(t, def.Operation)
		assert.NotEmpty(t, def.LogFile)
		assert.NotEmpty(t, def.GroupBy)
		assert.NotEmpty(t, def.Rules.RequiredColumns)
		assert.NotNil(t, def.Args)
	}
}

func TestLookupUnknownDomain(t *testing.T) {
	_, err := Lookup("orbital")
	assert.True(t, errors.Is(err, domain.ErrUnknownDomain))
}

func TestEmissionsArgsAreScaled(t *testing.T) {
	def, err := Lookup(DomainEmissions)
	require.NoError(t, err)

	args := def.Args(domain.AggregatedRecord{
		Record: domain.Record{Entity: "Melbourne", Date: "01/01/2023", Value: 15},
	})
	assert.Equal(t, []string{"Melbourne", "01/01/2023", "15000"}, args)
}

func TestCityArgsCarryAllFields(t *testing.T) {
	def, err := Lookup(DomainCity)
	require.NoError(t, err)

	args := def.Args(domain.AggregatedRecord{
		Record: domain.Record{Entity: "Melbourne", Date: "01/01/2023", Category: "Aviation", Value: 10.5},
	})
	assert.Equal(t, []string{"Melbourne", "01/01/2023", "Aviation", "10.5"}, args)
}
