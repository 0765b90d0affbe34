package semantic

import (
	"fmt"
	"strings"
)

// maxCompanyContent caps how much website text is sent to the model.
const maxCompanyContent = 3000

const postingPromptTemplate = `You are a scam detection assistant. You analyze job posts, emails and recruiter messages to detect fraud.

Analyze the following text and answer in pure JSON only.

Text to analyze:
"""%s"""

Context (applicant profile):
"""%s"""

Evaluate:
1. Is this a security alert or phishing attempt (for example "verify account" or "unusual login")?
2. Are there hints of hidden fees or deposits?
3. Does the application URL fail to match the company name?
4. Does the recruiter move hiring to Telegram or WhatsApp?
5. Is the salary unrealistic for the hours?
6. Is the role description vague?
7. Is the company identity unclear?
8. A final scam probability from 0 (safe) to 100 (scam).

Answer with JSON in exactly this shape:
{
  "phishing_attempt": true/false,
  "hidden_fees": true/false,
  "domain_mismatch": true/false,
  "messaging_apps": true/false,
  "unrealistic_salary": true/false,
  "vague_role": true/false,
  "company_unclear": true/false,
  "llm_score": number
}`

const companyPromptTemplate = `Assess whether this company website belongs to a legitimate employer.

Website URL: %s

Content:
"""%s"""

Answer with JSON only:
{
  "appears_legitimate": true/false,
  "appears_fraudulent": true/false,
  "has_red_flags": true/false,
  "provides_clear_info": true/false,
  "legitimacy_score": number,
  "key_observations": ["observation", "..."]
}`

func postingPrompt(text, userContext string) string {
	return fmt.Sprintf(postingPromptTemplate, text, userContext)
}

func companyPrompt(url, content string) string {
	if r := []rune(content); len(r) > maxCompanyContent {
		content = string(r[:maxCompanyContent])
	}
	return fmt.Sprintf(companyPromptTemplate, url, strings.TrimSpace(content))
}
