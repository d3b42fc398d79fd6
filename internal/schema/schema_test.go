package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mcml-cli/pkg/mcml"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		errMsg  string
	}{
		{
			name:  "minimal",
			input: `{"text":""}`,
		},
		{
			name:  "nested with events",
			input: `{"text":"","extra":[{"text":"hi","color":"gold","bold":true,"clickEvent":{"action":"run_command","value":"/spawn"},"hoverEvent":{"action":"show_text","value":[{"text":"tip","italic":false}]}}]}`,
		},
		{
			name:    "missing text",
			input:   `{"color":"red"}`,
			wantErr: true,
			errMsg:  "text",
		},
		{
			name:    "unknown color",
			input:   `{"text":"x","color":"orange"}`,
			wantErr: true,
			errMsg:  "color",
		},
		{
			name:    "unknown click action",
			input:   `{"text":"x","clickEvent":{"action":"copy","value":"y"}}`,
			wantErr: true,
			errMsg:  "action",
		},
		{
			name:    "invalid nested component",
			input:   `{"text":"","extra":[{"text":1}]}`,
			wantErr: true,
			errMsg:  "extra.0.text",
		},
		{
			name:    "empty hover value",
			input:   `{"text":"x","hoverEvent":{"action":"show_text","value":[]}}`,
			wantErr: true,
			errMsg:  "hoverEvent.value",
		},
		{
			name:    "unknown property",
			input:   `{"text":"x","font":"uniform"}`,
			wantErr: true,
			errMsg:  "font",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.input))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidate_NotJSON(t *testing.T) {
	err := Validate([]byte("{"))
	require.Error(t, err)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestValidateValue_ParsedRuns(t *testing.T) {
	inputs := []string{
		"plain",
		"&aHello &l&nworld&r!",
		`[Click](!"/spawn" T"&6Go home") then [file](/"a.txt" I"{\"id\":\"stone\"}")`,
		"&k&m&oeverything",
	}

	p := mcml.New()
	for _, in := range inputs {
		assert.NoError(t, ValidateValue(mcml.Root(p.Parse(in, nil))), in)
	}
}
