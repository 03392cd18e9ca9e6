package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectStrongPhrase(t *testing.T) {
	d := NewDetector(testSalesConfig())

	res := d.Detect("I'll take it, sending payment now")
	assert.True(t, res.Found)
	assert.NotEmpty(t, res.Keywords)
	assert.Contains(t, res.Keywords, "i'll take it")
	assert.True(t, d.ShouldFlag(res))
}

func TestDetectNoMatch(t *testing.T) {
	d := NewDetector(testSalesConfig())

	res := d.Detect("just browsing, thanks")
	assert.False(t, res.Found)
	assert.Empty(t, res.Keywords)
	assert.False(t, d.ShouldFlag(res))
}

func TestDetectEmptyString(t *testing.T) {
	d := NewDetector(testSalesConfig())

	res := d.Detect("")
	assert.False(t, res.Found)
	assert.False(t, d.ShouldFlag(res))
}

func TestDetectIsCaseInsensitive(t *testing.T) {
	d := NewDetector(testSalesConfig())

	res := d.Detect("PAYMENT SENT via Venmo")
	assert.True(t, res.Found)
	assert.Contains(t, res.Keywords, "payment sent")
	assert.Contains(t, res.Keywords, "venmo")
}

func TestDetectDeduplicatesKeywords(t *testing.T) {
	d := NewDetector(testSalesConfig())

	res := d.Detect("sold! yes sold, payment sent")
	assert.True(t, res.Found)
	assert.Equal(t, []string{"payment sent", "sold"}, res.Keywords)
}

func TestSingleWeakMatchDoesNotFlag(t *testing.T) {
	d := NewDetector(testSalesConfig())

	res := d.Detect("might buy something later")
	assert.True(t, res.Found)
	assert.False(t, res.Strong)
	assert.False(t, d.ShouldFlag(res), "one weak keyword alone must not flag")
}

func TestWeakMatchesAtThresholdFlag(t *testing.T) {
	d := NewDetector(testSalesConfig())

	res := d.Detect("I'll buy it, sending it over venmo")
	assert.True(t, res.Found)
	assert.False(t, res.Strong)
	assert.GreaterOrEqual(t, len(res.Keywords), 2)
	assert.True(t, d.ShouldFlag(res))
}
