package annotation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type AnnotationSuite struct {
	suite.Suite
}

func TestAnnotationSuite(t *testing.T) {
	suite.Run(t, new(AnnotationSuite))
}

func (s *AnnotationSuite) TestNewHasEmptyTagLists() {
	item := New("00:00:01.000", "00:00:02.000")
	s.NotNil(item.SentimentTags)
	s.NotNil(item.SoundTags)
	s.Empty(item.Transcript)
	s.Empty(item.Speaker)
}

func (s *AnnotationSuite) TestMarshalEmitsEmptyArraysNotNull() {
	payload, err := json.Marshal(New("0", "1"))
	s.Require().NoError(err)
	s.Contains(string(payload), `"sentimentTags":[]`)
	s.Contains(string(payload), `"soundTags":[]`)
}

func (s *AnnotationSuite) TestSetFieldRecognizesTheFourScalarFields() {
	item := New("0", "1")
	s.True(item.SetField(FieldStartTime, "00:00:03.000"))
	s.True(item.SetField(FieldEndTime, "00:00:04.000"))
	s.True(item.SetField(FieldTranscript, "words"))
	s.True(item.SetField(FieldSpeaker, "Alice"))
	s.False(item.SetField(Field("color"), "blue"))

	s.Equal("00:00:03.000", item.StartTime)
	s.Equal("00:00:04.000", item.EndTime)
	s.Equal("words", item.Transcript)
	s.Equal("Alice", item.Speaker)
}

func (s *AnnotationSuite) TestCloneIsDeep() {
	item := New("0", "1")
	item.SentimentTags = []string{"calm"}

	cloned := item.Clone()
	cloned.SentimentTags[0] = "tense"
	s.Equal([]string{"calm"}, item.SentimentTags)
}

func (s *AnnotationSuite) TestAddUniqueTagTrimsAndRejectsDuplicates() {
	tags, changed := AddUniqueTag(nil, "  happy ")
	s.True(changed)
	s.Equal([]string{"happy"}, tags)

	tags, changed = AddUniqueTag(tags, "happy")
	s.False(changed)
	s.Equal([]string{"happy"}, tags)

	_, changed = AddUniqueTag(tags, "   ")
	s.False(changed)
}

func (s *AnnotationSuite) TestAddUniqueTagIsCaseSensitive() {
	tags, changed := AddUniqueTag([]string{"Happy"}, "happy")
	s.True(changed)
	s.Equal([]string{"Happy", "happy"}, tags)
}

func (s *AnnotationSuite) TestAddUniqueTagDoesNotMutateTheInput() {
	original := make([]string, 1, 4)
	original[0] = "a"
	appended, changed := AddUniqueTag(original, "b")
	s.True(changed)
	s.Equal([]string{"a"}, original)
	s.Equal([]string{"a", "b"}, appended)
}

func (s *AnnotationSuite) TestRemoveTagDropsOnlyTheMatch() {
	tags, changed := RemoveTag([]string{"a", "b", "c"}, " b ")
	s.True(changed)
	s.Equal([]string{"a", "c"}, tags)

	same, changed := RemoveTag(tags, "missing")
	s.False(changed)
	s.Equal([]string{"a", "c"}, same)
}

func (s *AnnotationSuite) TestSanitizeTagsTrimsDeduplicatesAndDropsEmpties() {
	s.Equal([]string{"a", "b"}, SanitizeTags([]string{" a ", "", "b", "a", "  "}))
	s.NotNil(SanitizeTags(nil))
}

func (s *AnnotationSuite) TestCollectionCloneIsDeep() {
	item := New("0", "1")
	item.SoundTags = []string{"music"}
	collection := Collection{item}

	cloned := collection.Clone()
	cloned[0].SoundTags[0] = "silence"
	cloned[0].Transcript = "changed"

	s.Equal([]string{"music"}, collection[0].SoundTags)
	s.Empty(collection[0].Transcript)
}

func (s *AnnotationSuite) TestTagsReadsByKind() {
	item := New("0", "1")
	item.SentimentTags = []string{"calm"}
	item.SoundTags = []string{"rain"}

	s.Equal([]string{"calm"}, item.Tags(TagSentiment))
	s.Equal([]string{"rain"}, item.Tags(TagSound))
	s.Nil(item.Tags(TagKind("texture")))
}
