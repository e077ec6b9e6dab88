package commands

import (
	"context"
	"log"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"selfbot/clients/enrichment"
	"selfbot/models"
	"selfbot/utils"
)

func (s *CommandsService) infoCommands() []Command {
	return []Command{
		{Name: "weather", Category: CategoryInfo, Usage: "weather [city]", Handler: s.weather},
		{Name: "time", Category: CategoryInfo, Usage: "time [timezone]", Handler: s.timeNow},
		{Name: "date", Category: CategoryInfo, Usage: "date", Handler: s.date},
		{Name: "botversion", Category: CategoryInfo, Usage: "botversion", Handler: s.static(BotVersion)},
		{Name: "help", Category: CategoryInfo, Usage: "help", Handler: s.help},
		{Name: "cpu", Category: CategoryInfo, Usage: "cpu", Handler: s.cpu},
		{Name: "memory", Category: CategoryInfo, Usage: "memory", Handler: s.memory},
		{Name: "os", Category: CategoryInfo, Usage: "os", Handler: s.operatingSystem},
		{Name: "goversion", Category: CategoryInfo, Usage: "goversion", Handler: s.goVersion},
		{Name: "nodeversion", Category: CategoryInfo, Usage: "nodeversion", Handler: s.goVersion},
		{Name: "discordversion", Category: CategoryInfo, Usage: "discordversion", Handler: s.discordVersion},
		{Name: "ask", Category: CategoryInfo, Usage: "ask [question]", Handler: s.ask},
	}
}

func (s *CommandsService) weather(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	if !s.enrichmentClient.HasAPIKey(enrichment.ProviderWeather) {
		return text("Weather API disabled. Add WEATHERSTACK_KEY to .env."), nil
	}
	if len(inv.Args) == 0 {
		return s.usageReply("weather [city]"), nil
	}

	payload, err := s.enrichmentClient.Fetch(ctx, enrichment.ProviderWeather, inv.Joined()).Get()
	if err != nil {
		log.Printf("⚠️ Enrichment provider %s failed: %v", enrichment.ProviderWeather, err)
		return text("Failed to fetch weather."), nil
	}

	// weatherstack reports errors in a 200 body
	if info := payload.Get("error.info"); info.Exists() {
		log.Printf("⚠️ Weather provider rejected query %q: %s", inv.Joined(), info.String())
		return textf("Failed to fetch weather: %s", info.String()), nil
	}

	location := payload.Get("location.name").String()
	current := payload.Get("current")
	if location == "" || !current.Exists() {
		return text("Failed to fetch weather."), nil
	}

	return textf("Weather in %s: %s°C, %s. Humidity: %s%%.",
		location,
		current.Get("temperature").String(),
		current.Get("weather_descriptions.0").String(),
		current.Get("humidity").String(),
	), nil
}

func (s *CommandsService) timeNow(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	zone := inv.Joined()
	if zone == "" {
		zone = "UTC"
	}

	location, err := time.LoadLocation(zone)
	if err != nil {
		return textf("Unknown time zone: %s", zone), nil
	}
	return text(s.now().In(location).Format("3:04:05 PM")), nil
}

func (s *CommandsService) date(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	return text(s.now().Format("1/2/2006")), nil
}

func (s *CommandsService) help(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	return text(s.helpText()), nil
}

func (s *CommandsService) cpu(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	return textf("CPU: %d logical cores, %d goroutines", runtime.NumCPU(), runtime.NumGoroutine()), nil
}

func (s *CommandsService) memory(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return textf("Memory Used: %.2f MB", float64(stats.HeapAlloc)/1024/1024), nil
}

func (s *CommandsService) operatingSystem(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	return textf("OS: %s", runtime.GOOS), nil
}

func (s *CommandsService) goVersion(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	return textf("Go: %s", runtime.Version()), nil
}

func (s *CommandsService) discordVersion(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	return textf("discordgo: %s", discordgo.VERSION), nil
}

func (s *CommandsService) ask(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	if !s.assistantClient.IsPresent() {
		return text("Ask disabled. Add ANTHROPIC_API_KEY to .env."), nil
	}
	if len(inv.Args) == 0 {
		return s.usageReply("ask [question]"), nil
	}

	answer, err := s.assistantClient.MustGet().Ask(ctx, inv.Joined())
	if err != nil {
		log.Printf("⚠️ Assistant failed to answer: %v", err)
		return text("Failed to get an answer."), nil
	}
	if answer == "" {
		return text("No answer."), nil
	}
	return text(utils.TruncateRunes(answer, utils.MaxListReplyLength)), nil
}
