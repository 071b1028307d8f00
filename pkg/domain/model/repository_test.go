package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/prship/pkg/domain/model"
)

func TestParseRepositoryRef(t *testing.T) {
	ref, err := model.ParseRepositoryRef("octo/hello")
	gt.NoError(t, err)
	gt.Equal(t, ref.Owner, "octo")
	gt.Equal(t, ref.Name, "hello")
	gt.Equal(t, ref.String(), "octo/hello")
}

func TestParseRepositoryRef_Invalid(t *testing.T) {
	for _, s := range []string{"", "octo", "octo/", "/hello", "octo/hello/extra"} {
		t.Run(s, func(t *testing.T) {
			_, err := model.ParseRepositoryRef(s)
			gt.Error(t, err).Is(model.ErrInvalidRepository)
		})
	}
}

func TestPublishTarget_Validate(t *testing.T) {
	valid := model.PublishTarget{
		Repo:       model.RepositoryRef{Owner: "octo", Name: "hello"},
		PRNumber:   42,
		HeadBranch: "feature",
		HeadSHA:    "abc123",
		WorkflowID: "build.yml",
	}

	t.Run("valid", func(t *testing.T) {
		target := valid
		gt.NoError(t, target.Validate())
	})

	t.Run("zero PR number", func(t *testing.T) {
		target := valid
		target.PRNumber = 0
		gt.Error(t, target.Validate()).Is(model.ErrInvalidTarget)
	})

	t.Run("missing head sha", func(t *testing.T) {
		target := valid
		target.HeadSHA = ""
		gt.Error(t, target.Validate()).Is(model.ErrInvalidTarget)
	})

	t.Run("missing workflow", func(t *testing.T) {
		target := valid
		target.WorkflowID = ""
		gt.Error(t, target.Validate()).Is(model.ErrInvalidTarget)
	})
}
