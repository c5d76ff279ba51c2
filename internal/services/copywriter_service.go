package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/campaignhq/campaign-studio-backend/internal/models"
)

const smsMaxChars = 150

// bracketTagRe matches editorial placeholder tags such as "[CTA]" or
// "[שם העסק]" that model output sometimes carries. Generated copy must
// never reach a recipient with one of these left in.
var bracketTagRe = regexp.MustCompile(`\[[^\]\n]{1,30}\]`)

// hashtagStripRe keeps Hebrew and Latin letters, digits and spaces when
// deriving hashtags from free text.
var hashtagStripRe = regexp.MustCompile(`[^א-תA-Za-z0-9 ]`)

var whitespaceRe = regexp.MustCompile(`\s+`)

var channelAliases = map[string]string{
	"email":     models.ChannelEmail,
	"e-mail":    models.ChannelEmail,
	"mail":      models.ChannelEmail,
	"sms":       models.ChannelSMS,
	"text":      models.ChannelSMS,
	"מסרון":     models.ChannelSMS,
	"social":    models.ChannelSocial,
	"socials":   models.ChannelSocial,
	"facebook":  models.ChannelSocial,
	"instagram": models.ChannelSocial,
	"tiktok":    models.ChannelSocial,
	"x":         models.ChannelSocial,
	"twitter":   models.ChannelSocial,
	"רשת":       models.ChannelSocial,
	"רשתות":     models.ChannelSocial,
	"ads":       models.ChannelAds,
	"ad":        models.ChannelAds,
	"מודעות":    models.ChannelAds,
	"פרסום":     models.ChannelAds,
}

var validTones = map[string]bool{
	"professional": true,
	"friendly":     true,
	"sharp":        true,
	"humorous":     true,
	"formal":       true,
}

// NormalizeChannel maps user input (including common aliases and Hebrew
// names) to a canonical channel. Unknown input returns "" so forms can
// reject it.
func NormalizeChannel(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if ch, ok := channelAliases[key]; ok {
		return ch
	}
	return ""
}

// ChannelOrDefault resolves a channel like NormalizeChannel but falls back
// to Social for anything unrecognized, matching generation behavior where
// producing something is better than refusing.
func ChannelOrDefault(raw string) string {
	if ch := NormalizeChannel(raw); ch != "" {
		return ch
	}
	return models.ChannelSocial
}

// NormalizeTone lowercases and validates the tone, defaulting to
// professional.
func NormalizeTone(raw string) string {
	tone := strings.ToLower(strings.TrimSpace(raw))
	if validTones[tone] {
		return tone
	}
	return "professional"
}

// CopywriterService produces campaign copy per channel. It tries the AI
// backend first when one is configured and falls back to deterministic
// templates so generation always succeeds.
type CopywriterService struct {
	ai *OpenAIService
}

func NewCopywriterService(ai *OpenAIService) *CopywriterService {
	return &CopywriterService{ai: ai}
}

// GenerateBrief writes a short strategy brief for the campaign.
func (s *CopywriterService) GenerateBrief(ctx context.Context, c *models.Campaign) string {
	if s.ai != nil && s.ai.Enabled() {
		prompt := fmt.Sprintf(
			"Write a short marketing brief (5-8 lines) for the campaign %q. Audience: %s. Goal: %s. Business: %s. Budget: %s. Plain text only, no markdown, no bracketed placeholders.",
			c.Name, c.Audience, orDash(c.Goal), orDash(c.BusinessDesc), orDash(c.Budget))
		if text, err := s.ai.GenerateText(ctx, briefSystemPrompt, prompt); err == nil {
			return StripBracketTags(text)
		} else {
			logrus.Warnf("AI brief generation failed, using template: %v", err)
		}
	}
	return s.templateBrief(c)
}

// GenerateCopy produces channel copy for the campaign in the given tone.
// The channel must already be canonical.
func (s *CopywriterService) GenerateCopy(ctx context.Context, c *models.Campaign, channel, tone string) string {
	tone = NormalizeTone(tone)
	channel = ChannelOrDefault(channel)

	if s.ai != nil && s.ai.Enabled() {
		if text, err := s.ai.GenerateText(ctx, copySystemPrompt, s.copyPrompt(c, channel, tone)); err == nil {
			text = StripBracketTags(text)
			if channel == models.ChannelSMS {
				text = styleSMS(text, tone)
			}
			return text
		} else {
			logrus.Warnf("AI copy generation failed for channel %s, using template: %v", channel, err)
		}
	}
	return s.templateCopy(c, channel, tone)
}

// GenerateCopyFromIdea produces channel copy built around a chosen campaign
// angle. Without an AI backend the idea leads and the template copy follows.
func (s *CopywriterService) GenerateCopyFromIdea(ctx context.Context, c *models.Campaign, channel, tone, idea string) string {
	tone = NormalizeTone(tone)
	channel = ChannelOrDefault(channel)
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return s.GenerateCopy(ctx, c, channel, tone)
	}

	if s.ai != nil && s.ai.Enabled() {
		prompt := s.copyPrompt(c, channel, tone) + fmt.Sprintf(" Build the copy around this angle: %s", idea)
		if text, err := s.ai.GenerateText(ctx, copySystemPrompt, prompt); err == nil {
			text = StripBracketTags(text)
			if channel == models.ChannelSMS {
				text = styleSMS(text, tone)
			}
			return text
		} else {
			logrus.Warnf("AI copy generation from idea failed, using template: %v", err)
		}
	}

	base := s.templateCopy(c, channel, tone)
	if channel == models.ChannelSMS {
		return styleSMS(idea, tone)
	}
	return idea + "\n\n" + base
}

// GenerateIdeas returns up to n campaign angle ideas for the channel.
func (s *CopywriterService) GenerateIdeas(ctx context.Context, c *models.Campaign, channel, tone string, n int) []string {
	if n <= 0 {
		n = 3
	}
	if n > 10 {
		n = 10
	}
	channel = ChannelOrDefault(channel)
	tone = NormalizeTone(tone)

	if s.ai != nil && s.ai.Enabled() {
		prompt := fmt.Sprintf(
			"Suggest %d distinct %s campaign angles for %q (audience: %s, goal: %s, tone: %s). One idea per paragraph: a hook, one proof point, and a call to action. Plain text, no numbering, no brackets.",
			n, channel, c.Name, c.Audience, orDash(c.Goal), tone)
		if text, err := s.ai.GenerateText(ctx, ideasSystemPrompt, prompt); err == nil {
			if ideas := splitIdeas(text, n); len(ideas) > 0 {
				return ideas
			}
		} else {
			logrus.Warnf("AI idea generation failed, using local bank: %v", err)
		}
	}
	return localIdeaBank(c, n)
}

const briefSystemPrompt = "You are a senior marketing strategist writing concise campaign briefs for small businesses."
const copySystemPrompt = "You are a marketing copywriter. Return only the requested copy, ready to send, with no commentary."
const ideasSystemPrompt = "You are a marketing strategist brainstorming campaign angles."

func (s *CopywriterService) copyPrompt(c *models.Campaign, channel, tone string) string {
	var sb strings.Builder
	switch channel {
	case models.ChannelEmail:
		sb.WriteString("Write a marketing email with a 'Subject:' line, a 'Preheader:' line and a short body. ")
	case models.ChannelSMS:
		sb.WriteString(fmt.Sprintf("Write a marketing SMS of at most %d characters, a single line. ", smsMaxChars))
	case models.ChannelSocial:
		sb.WriteString("Write a social media caption followed by up to 3 hashtags on the last line. ")
	case models.ChannelAds:
		sb.WriteString("Write a paid ad with 'Headline:', 'Body:' and 'CTA:' lines. ")
	}
	sb.WriteString(fmt.Sprintf("Campaign: %s. Audience: %s. Goal: %s. Business: %s. Tone: %s.",
		c.Name, c.Audience, orDash(c.Goal), orDash(c.BusinessDesc), tone))
	if c.LandingURL != "" {
		sb.WriteString(fmt.Sprintf(" Landing page: %s.", c.LandingURL))
	}
	sb.WriteString(" No bracketed placeholders.")
	return sb.String()
}

// StripBracketTags removes short bracketed placeholder tags from text.
func StripBracketTags(text string) string {
	return strings.TrimSpace(bracketTagRe.ReplaceAllString(text, ""))
}

// splitIdeas breaks model output into individual ideas, preferring blank-line
// separation and falling back to single lines.
func splitIdeas(text string, n int) []string {
	parts := strings.Split(text, "\n\n")
	if len(parts) < 2 {
		parts = strings.Split(text, "\n")
	}
	var ideas []string
	for _, p := range parts {
		p = StripBracketTags(p)
		p = strings.Trim(p, "•- \n\t")
		if p == "" {
			continue
		}
		ideas = append(ideas, p)
		if len(ideas) == n {
			break
		}
	}
	return ideas
}

// --- Deterministic templates ---

func (s *CopywriterService) templateBrief(c *models.Campaign) string {
	benefit := benefitLine(c)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Campaign brief: %s\n\n", c.Name))
	sb.WriteString(fmt.Sprintf("Audience: %s\n", c.Audience))
	sb.WriteString(fmt.Sprintf("Primary channel: %s\n", c.DefaultChannel))
	if c.Goal != "" {
		sb.WriteString(fmt.Sprintf("Goal: %s\n", c.Goal))
	}
	if c.Budget != "" {
		sb.WriteString(fmt.Sprintf("Budget: %s\n", c.Budget))
	}
	sb.WriteString(fmt.Sprintf("\nKey message: %s\n", benefit))
	sb.WriteString("Approach: lead with the concrete benefit, back it with one proof point, close with a single clear call to action.\n")
	if c.LandingURL != "" {
		sb.WriteString(fmt.Sprintf("All copy should point to %s\n", c.LandingURL))
	}
	return sb.String()
}

func (s *CopywriterService) templateCopy(c *models.Campaign, channel, tone string) string {
	switch channel {
	case models.ChannelEmail:
		return emailTemplate(c, tone)
	case models.ChannelSMS:
		return styleSMS(smsTemplate(c), tone)
	case models.ChannelSocial:
		return socialTemplate(c)
	case models.ChannelAds:
		return adsTemplate(c)
	}
	return socialTemplate(c)
}

// benefitLine derives the strongest one-line benefit from the campaign
// fields. Rules are keyword based and checked most-specific first.
func benefitLine(c *models.Campaign) string {
	desc := strings.ToLower(c.BusinessDesc)
	goal := strings.ToLower(c.Goal)
	nameAndGoal := strings.ToLower(c.Name + " " + c.Goal)

	if containsAny(desc, "workshop", "camp", "class", "classes", "course", "studio", "lesson") {
		if containsAny(nameAndGoal, "holiday", "summer", "passover", "hanukkah", "חג", "קיץ") {
			return "Seasonal program - spots are limited, save yours"
		}
		return "Try a session and see the difference yourself"
	}
	if strings.Contains(goal, "webinar") {
		return "Free webinar - register now"
	}
	if containsAny(goal, "signup", "sign up", "registration", "register", "join") {
		return "Join in one click"
	}
	if containsAny(goal, "purchase", "sale", "buy", "order") {
		return "Limited-time offer"
	}
	if c.Goal != "" {
		return c.Goal
	}
	return "An offer worth a minute of your time"
}

func emailTemplate(c *models.Campaign, tone string) string {
	benefit := benefitLine(c)
	greeting := "Hi,"
	signature := fmt.Sprintf("Best,\n%s team", c.Name)
	if tone == "formal" {
		greeting = "Dear customer,"
		signature = fmt.Sprintf("Sincerely,\n%s", c.Name)
	} else if tone == "friendly" {
		greeting = "Hey there,"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Subject: %s — %s\n", c.Name, benefit))
	sb.WriteString(fmt.Sprintf("Preheader: %s\n\n", benefit))
	sb.WriteString(greeting + "\n\n")
	sb.WriteString(benefit + ".\n\n")
	sb.WriteString(fmt.Sprintf("Made for %s.\n\n", c.Audience))
	sb.WriteString(ctaLine(c) + "\n\n")
	sb.WriteString(signature + "\n")
	return sb.String()
}

func smsTemplate(c *models.Campaign) string {
	msg := fmt.Sprintf("%s: %s.", c.Name, benefitLine(c))
	if c.LandingURL != "" {
		msg += " " + c.LandingURL
	}
	return msg
}

func socialTemplate(c *models.Campaign) string {
	caption := fmt.Sprintf("%s\n%s.\nMade for %s.", c.Name, benefitLine(c), c.Audience)
	if c.LandingURL != "" {
		caption += "\n" + c.LandingURL
	}
	return caption + "\n" + strings.Join(deriveHashtags(c), " ")
}

func adsTemplate(c *models.Campaign) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Headline: %s\n", c.Name))
	sb.WriteString(fmt.Sprintf("Body: %s. Made for %s.\n", benefitLine(c), c.Audience))
	sb.WriteString("CTA: Learn more\n")
	if c.LandingURL != "" {
		sb.WriteString(fmt.Sprintf("URL: %s\n", c.LandingURL))
	}
	return sb.String()
}

func ctaLine(c *models.Campaign) string {
	if c.LandingURL != "" {
		return fmt.Sprintf("Take a look here: %s", c.LandingURL)
	}
	return "Reply to this email and we'll take it from there."
}

// deriveHashtags builds up to 3 hashtags from the business description and
// campaign name, falling back to a generic pair.
func deriveHashtags(c *models.Campaign) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, src := range []string{c.BusinessDesc, c.Name} {
		for _, word := range strings.Fields(hashtagStripRe.ReplaceAllString(src, "")) {
			tag := "#" + strings.ReplaceAll(word, " ", "")
			if len(tag) < 3 || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
			if len(tags) == 3 {
				return tags
			}
		}
	}
	if len(tags) == 0 {
		return []string{"#SmallBiz", "#CampaignStudio"}
	}
	return tags
}

// styleSMS applies the tone accent and enforces the SMS length cap.
func styleSMS(msg string, tone string) string {
	msg = strings.TrimSpace(msg)
	switch tone {
	case "friendly":
		msg += " 🙂"
	case "humorous":
		msg += " 😉"
	case "sharp":
		msg = whitespaceRe.ReplaceAllString(msg, " ")
		if !strings.HasSuffix(msg, ".") {
			msg += "."
		}
		msg += " Sign up now."
	case "formal":
		msg = strings.ReplaceAll(msg, "!", "")
	}
	return truncateSMS(msg, smsMaxChars)
}

// truncateSMS cuts msg to at most maxChars runes, backing up to the last
// space when that keeps a reasonable length, and marks the cut with an
// ellipsis. Already-short messages pass through unchanged.
func truncateSMS(msg string, maxChars int) string {
	runes := []rune(msg)
	if len(runes) <= maxChars {
		return msg
	}
	cut := string(runes[:maxChars-1])
	if idx := strings.LastIndex(cut, " "); idx > 0 && utf8.RuneCountInString(cut[:idx]) > 40 {
		cut = cut[:idx]
	}
	return cut + "…"
}

func localIdeaBank(c *models.Campaign, n int) []string {
	audience := c.Audience
	if audience == "" {
		audience = "your audience"
	}
	bank := []string{
		fmt.Sprintf("Lead with the problem %s feel every week, show how you solve it in one sentence, and ask them to take the next step today.", audience),
		"Share one real customer result with a number in it, then invite readers to get the same outcome.",
		"Run a limited-time opening offer: name the deadline, name the saving, and keep the call to action to three words.",
		fmt.Sprintf("Go behind the scenes: show how %s is made and why that matters to %s, closing with a soft invitation.", orDash(c.BusinessDesc), audience),
	}
	if n > len(bank) {
		n = len(bank)
	}
	return bank[:n]
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
