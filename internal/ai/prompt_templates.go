package ai

import (
	"fmt"

	"github.com/homemadechefs/chefcms/internal/models"
)

// translationPrompt instructs the model to translate text content while
// leaving embedded HTML markup untouched, and to return only the
// translation with no commentary.
const translationPrompt = `You are a professional translator specializing in food, culinary, and business content.
Translate the following text from English to %[1]s.

CRITICAL RULES:
1. Preserve ALL HTML tags exactly as they are (including <p>, <h2>, <strong>, <a>, etc.)
2. Translate ONLY the text content between tags
3. Maintain the same tone and professional style
4. Use natural, native-sounding %[1]s
5. Keep technical terms and brand names consistent
6. Do NOT add explanations or notes - output ONLY the translated text

Text to translate:
%[2]s

Translated %[1]s text:`

// BuildTranslationPrompt creates the prompt for translating one field
func BuildTranslationPrompt(text string, target models.Language) string {
	return fmt.Sprintf(translationPrompt, target.DisplayName(), text)
}
