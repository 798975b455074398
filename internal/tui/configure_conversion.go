package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/config"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/language"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/provider"
)

// editConversion handles the conversion section: model, input language
// and sampling parameters.
func editConversion(cfg *config.Config) error {
	selectedModel := cfg.Convert.Model
	if selectedModel == "" {
		selectedModel = defaultConversionModel()
	}

	modelDesc := "Gemini model used to elaborate prompts"
	if cfg.Convert.Model != "" {
		modelDesc = fmt.Sprintf("Currently: %s", cfg.Convert.Model)
	}

	selectedLanguage := cfg.General.Language

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Conversion Model").
				Description(modelDesc).
				Options(conversionModelOptions()...).
				Value(&selectedModel),
			huh.NewSelect[string]().
				Title("Input Language").
				Description("What you speak into the microphone").
				Options(languageOptions()...).
				Value(&selectedLanguage),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	// warn when the chosen model does not cover the chosen language
	if m := provider.FindModel(provider.Gemini, selectedModel); m != nil && !m.SupportsLanguage(selectedLanguage) {
		lang := language.FromCode(selectedLanguage)
		fmt.Println()
		fmt.Println(StyleWarning.Render(fmt.Sprintf("Model %s does not list %s support.", selectedModel, lang.Name)))
		fmt.Println(StyleMuted.Render("Keeping the selection; switch the model here if results degrade."))
		fmt.Println()
	}

	cfg.Convert.Model = selectedModel
	cfg.General.Language = selectedLanguage

	temperature := strconv.FormatFloat(cfg.Convert.Temperature, 'f', -1, 64)
	maxTokens := strconv.Itoa(cfg.Convert.MaxOutputTokens)
	grounding := cfg.General.Grounding

	tuneForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Temperature").
				Description("Sampling temperature, 0.0 to 2.0. Lower is more literal.").
				Placeholder("0.7").
				Value(&temperature).
				Validate(validateTemperature),
			huh.NewInput().
				Title("Max Output Tokens").
				Description("Reply token cap for conversions").
				Placeholder("2048").
				Value(&maxTokens).
				Validate(validatePositiveInt),
			huh.NewConfirm().
				Title("Ground conversions with web search by default?").
				Description("Grounded prompts cite sources but skip the structured category fields").
				Value(&grounding),
		),
	).WithTheme(getTheme())

	if err := tuneForm.Run(); err != nil {
		return err
	}

	cfg.Convert.Temperature, _ = strconv.ParseFloat(temperature, 64)
	cfg.Convert.MaxOutputTokens, _ = strconv.Atoi(maxTokens)
	cfg.General.Grounding = grounding

	return nil
}

// conversionModelOptions lists the Gemini text models from the registry
func conversionModelOptions() []huh.Option[string] {
	p := provider.Get(provider.Gemini)
	def := p.DefaultModel(provider.Text)

	var options []huh.Option[string]
	for _, m := range provider.ModelsOfType(p, provider.Text) {
		label := m.ID
		if m.Description != "" {
			label = fmt.Sprintf("%s - %s", m.ID, m.Description)
		}
		if m.ID == def {
			label += " (recommended)"
		}
		options = append(options, huh.NewOption(label, m.ID))
	}
	return options
}

func defaultConversionModel() string {
	return provider.Get(provider.Gemini).DefaultModel(provider.Text)
}

// languageOptions lists the supported input languages, auto-detect first
func languageOptions() []huh.Option[string] {
	options := []huh.Option[string]{
		huh.NewOption("Auto-detect (recommended)", language.Auto.Code),
	}
	for _, lang := range language.List() {
		label := lang.Name
		if lang.NativeName != "" && lang.NativeName != lang.Name {
			label = fmt.Sprintf("%s (%s)", lang.Name, lang.NativeName)
		}
		options = append(options, huh.NewOption(label, lang.Code))
	}
	options = append(options, huh.NewOption("Mixed (code-switched)", language.Mixed.Code))
	return options
}
