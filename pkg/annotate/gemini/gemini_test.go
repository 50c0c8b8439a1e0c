package gemini

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ArshadAliFreelance/audio-annotator/pkg/annotate"
)

type GeminiBatchGeneratorSuite struct {
	suite.Suite
}

func TestGeminiBatchGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeminiBatchGeneratorSuite))
}

func (s *GeminiBatchGeneratorSuite) TestNewBatchGeneratorEmptyPathReturnsError() {
	generator, err := NewBatchGenerator("   ", annotate.BatchOptions{})

	s.Require().Error(err)
	s.Nil(generator)
}

func (s *GeminiBatchGeneratorSuite) TestResolveModelNameUsesDefault() {
	s.Equal(defaultModelName, resolveModelName(annotate.BatchOptions{}))
}

func (s *GeminiBatchGeneratorSuite) TestResolveModelNameUsesOptionValue() {
	resolved := resolveModelName(annotate.BatchOptions{Model: "gemini-2.5-pro"})
	s.Equal("gemini-2.5-pro", resolved)
}

func (s *GeminiBatchGeneratorSuite) TestBatchResponseSchemaDescribesAnArrayOfRecords() {
	schema, err := batchResponseSchema()
	s.Require().NoError(err)
	s.Equal("array", schema["type"])

	items, ok := schema["items"].(map[string]any)
	s.Require().True(ok)
	s.Equal("object", items["type"])

	properties, ok := items["properties"].(map[string]any)
	s.Require().True(ok)
	for _, field := range []string{"startTime", "endTime", "transcript", "speaker", "sentimentTags", "soundTags"} {
		s.Contains(properties, field)
	}

	requiredJSON, err := json.Marshal(items["required"])
	s.Require().NoError(err)
	var required []string
	s.Require().NoError(json.Unmarshal(requiredJSON, &required))
	s.ElementsMatch([]string{"startTime", "endTime", "transcript"}, required)
}
