package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/ArshadAliFreelance/audio-annotator/pkg/annotation"
)

type WorkspaceSuite struct {
	suite.Suite
	ctx context.Context
	ws  *Workspace
}

func TestWorkspaceSuite(t *testing.T) {
	suite.Run(t, new(WorkspaceSuite))
}

func (s *WorkspaceSuite) SetupTest() {
	s.ctx = context.Background()
	s.ws = New()
}

func (s *WorkspaceSuite) seedOne() {
	item := annotation.New("00:00:01.000", "00:00:02.000")
	item.Transcript = "hello"
	s.ws.ReplaceAll(s.ctx, annotation.Collection{item})
}

func (s *WorkspaceSuite) TestNewWorkspaceIsEmpty() {
	s.Empty(s.ws.Current())
	s.False(s.ws.CanUndo())
	s.False(s.ws.CanRedo())
	s.Equal(DefaultExportBaseName, s.ws.ExportBaseName())
	s.NotEqual(s.ws.ID().String(), New().ID().String())
}

func (s *WorkspaceSuite) TestEditFieldReplacesTheNamedField() {
	s.seedOne()

	s.Require().NoError(s.ws.EditField(s.ctx, 0, annotation.FieldSpeaker, "Alice"))
	s.Equal("Alice", s.ws.Current()[0].Speaker)

	s.Require().NoError(s.ws.EditField(s.ctx, 0, annotation.FieldTranscript, "goodbye"))
	s.Equal("goodbye", s.ws.Current()[0].Transcript)
}

func (s *WorkspaceSuite) TestEditFieldRejectsStaleIndex() {
	s.seedOne()
	before := s.ws.Current()

	err := s.ws.EditField(s.ctx, 5, annotation.FieldSpeaker, "Alice")
	s.Require().ErrorIs(err, ErrIndexOutOfRange)
	s.Equal(before, s.ws.Current())
	s.Equal(2, s.ws.HistoryLen())
}

func (s *WorkspaceSuite) TestEditFieldRejectsUnknownField() {
	s.seedOne()

	err := s.ws.EditField(s.ctx, 0, annotation.Field("color"), "blue")
	s.Require().ErrorIs(err, ErrInvalidInput)
	s.Equal(2, s.ws.HistoryLen())
}

func (s *WorkspaceSuite) TestAddTagAppendsTrimmedText() {
	s.seedOne()

	s.Require().NoError(s.ws.AddTag(s.ctx, 0, annotation.TagSentiment, "  happy "))
	s.Equal([]string{"happy"}, s.ws.Current()[0].SentimentTags)
}

func (s *WorkspaceSuite) TestAddTagDuplicateIsANoOp() {
	s.seedOne()

	s.Require().NoError(s.ws.AddTag(s.ctx, 0, annotation.TagSound, "applause"))
	lengthAfterFirst := s.ws.HistoryLen()

	s.Require().NoError(s.ws.AddTag(s.ctx, 0, annotation.TagSound, "applause"))
	s.Equal([]string{"applause"}, s.ws.Current()[0].SoundTags)
	s.Equal(lengthAfterFirst, s.ws.HistoryLen())
}

func (s *WorkspaceSuite) TestAddTagEmptyTextIsANoOp() {
	s.seedOne()
	before := s.ws.HistoryLen()

	s.Require().NoError(s.ws.AddTag(s.ctx, 0, annotation.TagSentiment, "   "))
	s.Empty(s.ws.Current()[0].SentimentTags)
	s.Equal(before, s.ws.HistoryLen())
}

func (s *WorkspaceSuite) TestRemoveTagDropsTheOccurrence() {
	s.seedOne()
	s.Require().NoError(s.ws.AddTag(s.ctx, 0, annotation.TagSentiment, "happy"))
	s.Require().NoError(s.ws.AddTag(s.ctx, 0, annotation.TagSentiment, "tense"))

	s.Require().NoError(s.ws.RemoveTag(s.ctx, 0, annotation.TagSentiment, "happy"))
	s.Equal([]string{"tense"}, s.ws.Current()[0].SentimentTags)
}

func (s *WorkspaceSuite) TestRemoveTagAbsentIsANoOp() {
	s.seedOne()
	before := s.ws.HistoryLen()

	s.Require().NoError(s.ws.RemoveTag(s.ctx, 0, annotation.TagSentiment, "absent"))
	s.Equal(before, s.ws.HistoryLen())
}

func (s *WorkspaceSuite) TestInsertAtFrontPrependsAtThePlaybackPosition() {
	s.seedOne()
	s.ws.InsertAtFront(s.ctx, 3661.5)

	current := s.ws.Current()
	s.Require().Len(current, 2)
	s.Equal("01:01:01.500", current[0].StartTime)
	s.Equal("01:01:01.500", current[0].EndTime)
	s.Empty(current[0].Transcript)
	s.Empty(current[0].Speaker)
	s.Empty(current[0].SentimentTags)
	s.Equal("hello", current[1].Transcript)
}

func (s *WorkspaceSuite) TestDeleteAtRemovesTheAnnotation() {
	s.seedOne()
	s.ws.InsertAtFront(s.ctx, 0)

	s.Require().NoError(s.ws.DeleteAt(s.ctx, 0))
	current := s.ws.Current()
	s.Require().Len(current, 1)
	s.Equal("hello", current[0].Transcript)
}

func (s *WorkspaceSuite) TestDeleteAtRejectsStaleIndexAndLeavesStateUntouched() {
	s.seedOne()
	before := s.ws.Current()
	historyBefore := s.ws.HistoryLen()

	err := s.ws.DeleteAt(s.ctx, 3)
	s.Require().ErrorIs(err, ErrIndexOutOfRange)
	s.Equal(before, s.ws.Current())
	s.Equal(historyBefore, s.ws.HistoryLen())
}

func (s *WorkspaceSuite) TestReplaceAllNormalizesRecordsInOneSnapshot() {
	records := annotation.Collection{
		{
			StartTime:     "00:00:00.000",
			EndTime:       "00:00:05.000",
			Transcript:    "first",
			SentimentTags: []string{" calm ", "calm", ""},
		},
		{
			StartTime:  "00:00:05.000",
			EndTime:    "00:00:09.000",
			Transcript: "second",
		},
	}

	s.ws.ReplaceAll(s.ctx, records)

	current := s.ws.Current()
	s.Require().Len(current, 2)
	s.Equal([]string{"calm"}, current[0].SentimentTags)
	s.NotNil(current[1].SentimentTags)
	s.NotNil(current[1].SoundTags)
	s.Empty(current[1].Speaker)

	// One undo step covers the whole batch.
	s.Equal(2, s.ws.HistoryLen())
	s.True(s.ws.Undo())
	s.Empty(s.ws.Current())
}

func (s *WorkspaceSuite) TestUndoRedoRoundTrip() {
	s.seedOne()
	s.Require().NoError(s.ws.EditField(s.ctx, 0, annotation.FieldSpeaker, "Alice"))

	s.True(s.ws.Undo())
	s.Empty(s.ws.Current()[0].Speaker)
	s.True(s.ws.Redo())
	s.Equal("Alice", s.ws.Current()[0].Speaker)
}

func (s *WorkspaceSuite) TestLoadSourceAcceptsAudioAndDerivesBaseName() {
	s.seedOne()

	s.Require().NoError(s.ws.LoadSource(s.ctx, "interview_take2.mp3", "audio/mpeg", 1024))
	s.Equal("interview_take2.mp3", s.ws.SourceName())
	s.Equal("interview_take2", s.ws.ExportBaseName())
	s.Empty(s.ws.Current())
	s.False(s.ws.CanUndo())
}

func (s *WorkspaceSuite) TestLoadSourceRejectsNonAudioAndResets() {
	s.seedOne()

	err := s.ws.LoadSource(s.ctx, "notes.pdf", "application/pdf", 1024)
	s.Require().ErrorIs(err, ErrInvalidInput)
	s.Empty(s.ws.SourceName())
	s.Equal(DefaultExportBaseName, s.ws.ExportBaseName())
	s.Empty(s.ws.Current())
}

func (s *WorkspaceSuite) TestClearDropsSourceAndHistory() {
	s.Require().NoError(s.ws.LoadSource(s.ctx, "take.wav", "audio/wav", 10))
	s.seedOne()

	s.ws.Clear(s.ctx)
	s.Empty(s.ws.SourceName())
	s.Empty(s.ws.Current())
	s.False(s.ws.CanUndo())
}
