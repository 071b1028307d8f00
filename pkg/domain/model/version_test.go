package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/prship/pkg/domain/model"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name         string
		artifactName string
		want         string
	}{
		{name: "zip suffix", artifactName: "build-PR-42-1.4.0.zip", want: "1.4.0"},
		{name: "no suffix", artifactName: "build-PR-42-1.4.0", want: "1.4.0"},
		{name: "multi digit parts", artifactName: "app-linux-PR-7-10.20.30-amd64", want: "10.20.30"},
		{name: "two digit patch without suffix", artifactName: "build-PR-1-1.4.10", want: "1.4.10"},
		{name: "prerelease style suffix", artifactName: "x-PR-3-0.1.2-rc1.tar", want: "0.1.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := model.ParseVersion(tt.artifactName)
			gt.NoError(t, err)
			gt.Equal(t, v.String(), tt.want)
			gt.Equal(t, v.Tag(), "v"+tt.want)
			gt.Value(t, v.Semver()).NotNil()
		})
	}
}

func TestParseVersion_Invalid(t *testing.T) {
	tests := []struct {
		name         string
		artifactName string
	}{
		{name: "no PR marker", artifactName: "build-1.4.0.zip"},
		{name: "no prefix", artifactName: "-PR-42-1.4.0.zip"},
		{name: "missing patch", artifactName: "build-PR-42-1.4.zip"},
		{name: "non numeric PR", artifactName: "build-PR-x-1.4.0.zip"},
		{name: "empty", artifactName: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := model.ParseVersion(tt.artifactName)
			gt.Error(t, err).Is(model.ErrInvalidArtifactName)
			gt.Value(t, v).Nil()
		})
	}
}

func TestParseVersion_Repeated(t *testing.T) {
	// Matching is stateless: the same name parses on every call.
	for range 3 {
		v, err := model.ParseVersion("build-PR-42-1.4.0.zip")
		gt.NoError(t, err)
		gt.Equal(t, v.String(), "1.4.0")
	}
}
