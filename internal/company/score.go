package company

import (
	"github.com/nao1215/trustguard/internal/model"
)

const (
	baseScore = 50

	sslPoints         = 5
	aboutPoints       = 5
	contactPoints     = 5
	careersPoints     = 5
	privacyPoints     = 3
	termsPoints       = 3
	legalPoints       = 4
	contentPoints     = 5
	spamPenalty       = 20
	fraudulentPenalty = 30
	redFlagPenalty    = 15
	legitimateBonus   = 10
	clearInfoBonus    = 5
	indicatorWeight   = 6
	legitimacyWeight  = 4
	weightDivisor     = indicatorWeight + legitimacyWeight
	maxObservations   = 3
	observationPrefix = "AI: "
	maxCompanyScore   = 100
	minCompanyScore   = 0
)

// Score combines indicator points and the judgment into a 0..100 trust
// score weighted 60/40 towards the indicators. Fractions are truncated.
func Score(ind Indicators, j model.LegitimacyJudgment) int {
	score := baseScore
	add := func(ok bool, points int) {
		if ok {
			score += points
		}
	}

	add(ind.SSL, sslPoints)
	add(ind.AboutPage, aboutPoints)
	add(ind.ContactPage, contactPoints)
	add(ind.CareersPage, careersPoints)
	add(ind.PrivacyPolicy, privacyPoints)
	add(ind.TermsOfService, termsPoints)
	add(ind.LegalInfo, legalPoints)
	add(ind.SufficientContent, contentPoints)
	add(ind.SpamLanguage, -spamPenalty)

	add(j.AppearsFraudulent, -fraudulentPenalty)
	add(j.HasRedFlags, -redFlagPenalty)
	add(j.AppearsLegitimate, legitimateBonus)
	add(j.ProvidesClearInfo, clearInfoBonus)

	final := (score*indicatorWeight + j.LegitimacyScore*legitimacyWeight) / weightDivisor
	return min(max(final, minCompanyScore), maxCompanyScore)
}

// RiskFactors lists the problems found on the website.
func RiskFactors(ind Indicators, j model.LegitimacyJudgment) []string {
	var risks []string
	addIf := func(cond bool, msg string) {
		if cond {
			risks = append(risks, msg)
		}
	}

	addIf(!ind.SSL, "Website does not use HTTPS encryption")
	addIf(!ind.ContactPage, "No contact page found")
	addIf(!ind.AboutPage, "No 'About Us' page found")
	addIf(ind.SpamLanguage, "Contains spam or suspicious language")
	addIf(!ind.SufficientContent, "Website has minimal content")
	addIf(j.AppearsFraudulent, "AI detected fraudulent indicators")
	addIf(j.HasRedFlags, "AI detected red flags in content")
	addIf(!ind.LegalInfo, "No company registration or legal information found")

	for i, obs := range j.KeyObservations {
		if i == maxObservations {
			break
		}
		risks = append(risks, observationPrefix+obs)
	}
	return risks
}
