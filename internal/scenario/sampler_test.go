package scenario

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dialogsynth/internal/dataset"
)

const bundled = "../../configs/scenario"

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestParseVariant(t *testing.T) {
	for _, s := range []string{"default", "aggressive", "aggressive_en"} {
		v, err := ParseVariant(s)
		require.NoError(t, err)
		assert.Equal(t, Variant(s), v)
	}
	_, err := ParseVariant("friendly")
	assert.Error(t, err)
}

func TestVariantFiles(t *testing.T) {
	assert.Equal(t, "default", Default.ProfileDir())
	assert.Equal(t, "aggressive", AggressiveEN.ProfileDir())
	assert.Equal(t, "tasks_de.yaml", Aggressive.TasksFile())
	assert.Equal(t, "tasks_en.yaml", AggressiveEN.TasksFile())
	assert.False(t, Default.BotAgents())
	assert.True(t, Aggressive.BotAgents())
}

func TestLoadBundledCollections(t *testing.T) {
	for _, v := range []Variant{Default, Aggressive, AggressiveEN} {
		t.Run(string(v), func(t *testing.T) {
			c, err := LoadCollections(bundled, v)
			require.NoError(t, err)
			assert.NotEmpty(t, c.Personal.CompanyNames)
			assert.NotEmpty(t, c.Tasks)
			assert.NotEmpty(t, c.Media)
			assert.NotEmpty(t, c.Service.Styles)
			assert.NotEmpty(t, c.Customer.Goals)
		})
	}
}

func TestLoadCollectionsMissingFile(t *testing.T) {
	_, err := LoadCollections(t.TempDir(), Default)
	var loadErr *dataset.ResourceLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Path, "personal_data.yaml")
}

func TestLoadCollectionsBadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "default"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default", "personal_data.yaml"), []byte("company_name: [unclosed"), 0o644))

	_, err := LoadCollections(dir, Default)
	var loadErr *dataset.ResourceLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestSampledTaskBelongsToTopic(t *testing.T) {
	c, err := LoadCollections(bundled, Default)
	require.NoError(t, err)
	s := NewSampler(c, Default, seeded(1))

	for i := 0; i < 200; i++ {
		p, err := s.Sample()
		require.NoError(t, err)
		assert.Contains(t, c.Tasks[p.Topic], p.Task)
		assert.Contains(t, c.Personal.PersonNames, p.ServiceAgentName)
		assert.Contains(t, c.Personal.CompanyNames, p.Bank)
		assert.NotEmpty(t, p.Service.Style.Detail)
		assert.NotEmpty(t, p.Customer.Emotion.Description)
	}
}

func TestAggressiveUsesBotNames(t *testing.T) {
	c, err := LoadCollections(bundled, Aggressive)
	require.NoError(t, err)
	s := NewSampler(c, Aggressive, seeded(2))

	for i := 0; i < 50; i++ {
		p, err := s.Sample()
		require.NoError(t, err)
		assert.Contains(t, c.Personal.BotNames, p.ServiceAgentName)
	}
}

func TestAggressiveENPinsPhoneCall(t *testing.T) {
	c, err := LoadCollections(bundled, AggressiveEN)
	require.NoError(t, err)
	s := NewSampler(c, AggressiveEN, seeded(3))

	for i := 0; i < 50; i++ {
		p, err := s.Sample()
		require.NoError(t, err)
		assert.Equal(t, PhoneCall, p.MediaType)
		assert.NotEmpty(t, p.MediaDescription)
	}

	c.Media = []Medium{{Type: "email"}}
	_, err = s.Sample()
	assert.Error(t, err)
}

func TestSeededSamplerIsReproducible(t *testing.T) {
	c, err := LoadCollections(bundled, Default)
	require.NoError(t, err)

	a := NewSampler(c, Default, seeded(42))
	b := NewSampler(c, Default, seeded(42))
	for i := 0; i < 20; i++ {
		pa, err := a.Sample()
		require.NoError(t, err)
		pb, err := b.Sample()
		require.NoError(t, err)
		assert.Equal(t, pa, pb)
	}
}

func TestEmptyPool(t *testing.T) {
	c, err := LoadCollections(bundled, Default)
	require.NoError(t, err)
	c.Tasks = Tasks{"Leer": nil}

	_, err = NewSampler(c, Default, seeded(4)).Sample()
	assert.ErrorIs(t, err, ErrEmptyPool)
}
