package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scribe/pkg/domain/model"
	"github.com/secmon-lab/scribe/pkg/domain/types"
)

func TestModelPolicy_Defaults(t *testing.T) {
	policy := model.DefaultModelPolicy()

	gt.B(t, policy.IsRestricted("gpt-4o")).True()
	gt.B(t, policy.IsRestricted("claude-3-5-sonnet-20240620")).True()
	gt.B(t, policy.IsRestricted("gpt-4o-mini")).False()

	gt.B(t, policy.ExcludesTemperature("o1")).True()
	gt.B(t, policy.ExcludesTemperature("o3-mini")).True()
	gt.B(t, policy.ExcludesTemperature("o1-preview")).False()

	gt.Value(t, policy.PrivilegedEmailSuffix).Equal("@langchain.dev")
}

func TestResolvedModelConfig_Redacted(t *testing.T) {
	cfg := &model.ResolvedModelConfig{
		ModelName:     "gpt-4",
		ModelProvider: types.ProviderAzureOpenAI,
		APIKey:        "sk-secret",
		AzureConfig:   &model.AzureConfig{APIKey: "azure-secret", InstanceName: "inst"},
	}

	redacted := cfg.Redacted()
	gt.Value(t, redacted.APIKey).NotEqual("sk-secret")
	gt.Value(t, redacted.AzureConfig.APIKey).NotEqual("azure-secret")
	gt.Value(t, redacted.AzureConfig.InstanceName).Equal("inst")

	// original is untouched
	gt.Value(t, cfg.APIKey).Equal("sk-secret")
	gt.Value(t, cfg.AzureConfig.APIKey).Equal("azure-secret")
}

func TestChatModelParams_Redacted(t *testing.T) {
	t.Run("empty key stays empty", func(t *testing.T) {
		p := &model.ChatModelParams{ModelName: "llama3"}
		gt.Value(t, p.Redacted().APIKey).Equal("")
	})

	t.Run("key is masked", func(t *testing.T) {
		p := &model.ChatModelParams{ModelName: "gpt-4o", APIKey: "sk"}
		gt.Value(t, p.Redacted().APIKey).NotEqual("sk")
		gt.Value(t, p.APIKey).Equal("sk")
	})
}
