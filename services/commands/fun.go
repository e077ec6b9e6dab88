package commands

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/samber/mo"

	"selfbot/clients"
	"selfbot/clients/enrichment"
	"selfbot/models"
)

var eightBallAnswers = []string{
	"Yes", "No", "Maybe", "Definitely", "Ask again later", "Outlook good", "Signs point to yes", "Very doubtful",
}

var zodiacSigns = []string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()"

const passwordLength = 12

const memeEmbedColor = 0x0099ff

func (s *CommandsService) funCommands() []Command {
	return []Command{
		{Name: "8ball", Category: CategoryFun, Usage: "8ball [question]", Handler: s.eightBall},
		{Name: "coinflip", Category: CategoryFun, Usage: "coinflip", Handler: s.coinFlip},
		{Name: "dice", Category: CategoryFun, Usage: "dice", Handler: s.dice},
		{Name: "joke", Category: CategoryFun, Usage: "joke", Handler: s.textProvider(enrichment.ProviderJoke, "Failed to fetch joke.")},
		{Name: "pun", Category: CategoryFun, Usage: "pun", Handler: s.textProvider(enrichment.ProviderPun, "Failed to fetch pun.")},
		{Name: "dadjoke", Category: CategoryFun, Usage: "dadjoke", Handler: s.textProvider(enrichment.ProviderDadJoke, "Failed to fetch dad joke.")},
		{Name: "meme", Category: CategoryFun, Usage: "meme", Handler: s.meme},
		{Name: "catfact", Category: CategoryFun, Usage: "catfact", Handler: s.jsonProvider(enrichment.ProviderCatFact, "Failed to fetch cat fact.", jsonField("fact"))},
		{Name: "dogfact", Category: CategoryFun, Usage: "dogfact", Handler: s.jsonProvider(enrichment.ProviderDogFact, "Failed to fetch dog fact.", jsonField("facts.0"))},
		{Name: "quote", Category: CategoryFun, Usage: "quote", Handler: s.jsonProvider(enrichment.ProviderQuote, "Failed to fetch quote.", formatQuote)},
		{Name: "riddle", Category: CategoryFun, Usage: "riddle", Handler: s.jsonProvider(enrichment.ProviderRiddle, "Failed to fetch riddle.", formatRiddle)},
		{Name: "fortunecookie", Category: CategoryFun, Usage: "fortunecookie", Handler: s.jsonProvider(enrichment.ProviderFortune, "Failed to fetch fortune.", formatFortune)},
		{Name: "randomfact", Category: CategoryFun, Usage: "randomfact", Handler: s.jsonProvider(enrichment.ProviderRandomFact, "Failed to fetch random fact.", jsonField("text"))},
		{Name: "knockknock", Category: CategoryFun, Usage: "knockknock", Handler: s.knockKnock},
		{Name: "horoscope", Category: CategoryFun, Usage: "horoscope [sign]", Handler: s.horoscope},
		{Name: "magictrick", Category: CategoryFun, Usage: "magictrick", Handler: s.magicTrick},
		{Name: "superhero", Category: CategoryFun, Usage: "superhero [name]", Handler: s.superhero},
		{Name: "bandname", Category: CategoryFun, Usage: "bandname [word]", Handler: s.bandName},
		{Name: "passwordgen", Category: CategoryFun, Usage: "passwordgen", Handler: s.passwordGen},
		{Name: "colorhex", Category: CategoryFun, Usage: "colorhex", Handler: s.colorHex},
	}
}

func (s *CommandsService) eightBall(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	return text(s.randomChoice(eightBallAnswers)), nil
}

func (s *CommandsService) coinFlip(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	if s.intN(2) == 0 {
		return text("Heads!"), nil
	}
	return text("Tails!"), nil
}

func (s *CommandsService) dice(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	return textf("Rolled: %d", s.intN(6)+1), nil
}

func (s *CommandsService) textProvider(provider, fallback string) Handler {
	return s.jsonProvider(provider, fallback, plainText)
}

func (s *CommandsService) jsonProvider(provider, fallback string, format func(payload clients.Payload) (string, bool)) Handler {
	return func(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
		return s.fetchReply(ctx, provider, "", fallback, format), nil
	}
}

func formatQuote(payload clients.Payload) (string, bool) {
	if !hasField(payload, "content") {
		return "", false
	}
	return fmt.Sprintf("\"%s\" - %s", payload.Get("content").String(), payload.Get("author").String()), true
}

func formatRiddle(payload clients.Payload) (string, bool) {
	if !hasField(payload, "riddle") {
		return "", false
	}
	return fmt.Sprintf("Riddle: %s\nAnswer: ||%s||", payload.Get("riddle").String(), payload.Get("answer").String()), true
}

func formatFortune(payload clients.Payload) (string, bool) {
	if !hasField(payload, "value") {
		return "", false
	}
	return fmt.Sprintf("Fortune: %s (Chuck Norris style!)", payload.Get("value").String()), true
}

// meme picks a random imgflip template and sends it as an embed with a plain text fallback
func (s *CommandsService) meme(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	payload, err := s.enrichmentClient.Fetch(ctx, enrichment.ProviderMeme, "").Get()
	if err != nil {
		log.Printf("⚠️ Enrichment provider %s failed: %v", enrichment.ProviderMeme, err)
		return text("Failed to fetch meme: API request failed."), nil
	}

	memes := payload.Get("data.memes").Array()
	if !payload.Get("success").Bool() || len(memes) == 0 {
		log.Printf("⚠️ Meme API returned an invalid response structure")
		return text("Failed to fetch meme: Invalid API response."), nil
	}

	meme := memes[s.intN(len(memes))]
	name := meme.Get("name").String()
	memeURL := meme.Get("url").String()
	if name == "" || memeURL == "" {
		log.Printf("⚠️ Meme API returned a meme without name or url")
		return text("Failed to fetch meme: Missing meme data."), nil
	}

	return mo.Some(models.Reply{
		Embed: &models.Embed{
			Title:       name,
			Description: "Here's your meme!",
			Color:       memeEmbedColor,
			Footer:      "Powered by Imgflip",
			ImageURL:    memeURL,
		},
		FallbackText: fmt.Sprintf("Meme: %s\n%s", name, memeURL),
	}), nil
}

func (s *CommandsService) knockKnock(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	return text("Knock knock! Who's there? Interrupting cow. Interrupting cow wh-MOO!"), nil
}

func (s *CommandsService) horoscope(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	subject := "Your"
	if requested, ok := inv.Arg(0).Get(); ok {
		for _, sign := range zodiacSigns {
			if strings.EqualFold(sign, requested) {
				subject = sign
				break
			}
		}
	}
	return textf("%s horoscope: Good things are coming!", subject), nil
}

func (s *CommandsService) magicTrick(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	return textf("Think of a number between 1-10. Add 5, multiply by 2, subtract 10. Your number is %d!", s.intN(10)+1), nil
}

func (s *CommandsService) superhero(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	if len(inv.Args) == 0 {
		return textf("Your superhero name: %s", s.nameFunc("Invisible Man")), nil
	}
	return textf("Your superhero name: Super %s", inv.Joined()), nil
}

func (s *CommandsService) bandName(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	word := inv.Joined()
	if word == "" {
		word = s.nameFunc("Discord")
	}
	return textf("Band name idea: The %s Rebels", word), nil
}

func (s *CommandsService) passwordGen(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	var b strings.Builder
	for range passwordLength {
		b.WriteByte(passwordAlphabet[s.intN(len(passwordAlphabet))])
	}
	return textf("Generated password: %s", b.String()), nil
}

func (s *CommandsService) colorHex(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	return textf("#%06x", s.intN(0x1000000)), nil
}
