package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPeriod_Ordering(t *testing.T) {
	a := Period{Year: 2022, Quarter: 4}
	b := Period{Year: 2023, Quarter: 1}
	c := Period{Year: 2023, Quarter: 2}

	assert.True(t, a.Before(b))
	assert.True(t, b.Before(c))
	assert.False(t, c.Before(c))
	assert.True(t, c.After(a))
	assert.Equal(t, "2023T1", b.String())
}

func TestPeriod_Months(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, Period{Year: 2024, Quarter: 1}.Months())
	assert.Equal(t, []int{10, 11, 12}, Period{Year: 2024, Quarter: 4}.Months())
}

func TestCatalog_Names(t *testing.T) {
	c := DefaultCatalog()

	assert.Len(t, c.AglomeradoCodes(), 32)
	assert.Equal(t, "2", c.AglomeradoCodes()[0])
	assert.Equal(t, "Gran La Plata", c.AglomeradoName("2"))
	assert.Equal(t, "Aglomerado 99", c.AglomeradoName("99"))
	assert.Equal(t, UnknownName, c.AglomeradoName(UnknownCode))
	assert.True(t, c.HasAglomerado("93"))
	assert.False(t, c.HasAglomerado("1"))

	assert.Equal(t, []string{"1", "40", "41", "42", "43", "44"}, c.RegionCodes())
	assert.Equal(t, "Patagonia", c.RegionName("44"))
}

func TestParseDataset(t *testing.T) {
	d, ok := ParseDataset("H")
	assert.True(t, ok)
	assert.Equal(t, DatasetHousehold, d)

	d, ok = ParseDataset("individual")
	assert.True(t, ok)
	assert.Equal(t, ';', d.Delimiter())

	_, ok = ParseDataset("x")
	assert.False(t, ok)
	assert.Equal(t, ',', DatasetBasket.Delimiter())
}
