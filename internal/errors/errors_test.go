package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/verb-battle/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "save not found",
			expected: "NOT_FOUND: save not found",
		},
		{
			name:     "data not found error",
			code:     errors.CodeDataNotFound,
			message:  "tense missing",
			expected: "DATA_NOT_FOUND: tense missing",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.DataNotFound("no conjugation").
		WithMeta("verb", "hablar").
		WithMeta("pronoun", "yo")

	s.Equal("hablar", err.Meta["verb"])
	s.Equal("yo", err.Meta["pronoun"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to save game")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to save game", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCodeAndMeta() {
	baseErr := errors.DataNotFound("verb missing").WithMeta("verb", "ser")
	wrapped := errors.Wrapf(baseErr, "failed to generate challenge for %s", "goblin")

	s.Equal(errors.CodeDataNotFound, wrapped.Code)
	s.Equal("failed to generate challenge for goblin", wrapped.Message)
	s.Equal("ser", wrapped.Meta["verb"])
	s.True(errors.IsDataNotFound(wrapped))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := errors.NotFound("slot missing").WithMeta("slot", "a")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "store unavailable")

	s.Equal(errors.CodeUnavailable, wrapped.Code)
	s.Equal("a", wrapped.Meta["slot"])
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestConstructorFunctions() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		code        errors.Code
	}{
		{"NotFound", func() *errors.Error { return errors.NotFound("test") }, errors.CodeNotFound},
		{"DataNotFound", func() *errors.Error { return errors.DataNotFound("test") }, errors.CodeDataNotFound},
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.CodeInvalidArgument},
		{"FailedPrecondition", func() *errors.Error { return errors.FailedPrecondition("test") }, errors.CodeFailedPrecondition},
		{"Internal", func() *errors.Error { return errors.Internal("test") }, errors.CodeInternal},
		{"Unavailable", func() *errors.Error { return errors.Unavailable("test") }, errors.CodeUnavailable},
		{"DataLoss", func() *errors.Error { return errors.DataLoss("test") }, errors.CodeDataLoss},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Equal(tc.code, err.Code)
			s.Equal("test", err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("a")
	err2 := errors.NotFound("b")
	err3 := errors.InvalidArgument("a")

	s.True(err1.Is(err2))
	s.False(err1.Is(err3))
	s.True(errors.Is(errors.Wrap(err1, "wrapped"), err2))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.DataNotFound("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Equal(errors.CodeDataNotFound, errors.GetCode(err))
	s.Equal(errors.CodeDataNotFound, errors.GetCode(wrapped))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.NotFound("friendly message")
	wrapped := errors.Wrap(err, "wrapped message")

	s.Equal("friendly message", errors.GetMessage(err))
	s.Equal("wrapped message", errors.GetMessage(wrapped))
	s.Equal("standard error", errors.GetMessage(fmt.Errorf("standard error")))
	s.Equal("", errors.GetMessage(nil))
	s.Nil(errors.GetMeta(fmt.Errorf("standard error")))
}

func (s *ErrorsTestSuite) TestFatalCodes() {
	s.True(errors.CodeDataNotFound.Fatal())
	s.True(errors.CodeInternal.Fatal())
	s.False(errors.CodeInvalidArgument.Fatal())
	s.False(errors.CodeFailedPrecondition.Fatal())
}
