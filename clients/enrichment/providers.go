package enrichment

import (
	"net/url"
	"strings"
)

// Provider names understood by Fetch
const (
	ProviderJoke       = "joke"
	ProviderPun        = "pun"
	ProviderDadJoke    = "dadjoke"
	ProviderMeme       = "meme"
	ProviderCatFact    = "catfact"
	ProviderDogFact    = "dogfact"
	ProviderQuote      = "quote"
	ProviderRiddle     = "riddle"
	ProviderFortune    = "fortune"
	ProviderTrivia     = "trivia"
	ProviderRandomFact = "randomfact"
	ProviderGeoIP      = "geoip"
	ProviderWeather    = "weather"
)

type payloadFormat int

const (
	formatJSON payloadFormat = iota
	formatText
)

// providerEndpoints holds the base URL for every provider. Tests point these at httptest servers.
var providerEndpoints = map[string]string{
	ProviderJoke:       "https://sv443.net/jokeapi/v2/joke/Any?format=txt",
	ProviderPun:        "https://sv443.net/jokeapi/v2/joke/Pun?format=txt",
	ProviderDadJoke:    "https://icanhazdadjoke.com/",
	ProviderMeme:       "https://api.imgflip.com/get_memes",
	ProviderCatFact:    "https://catfact.ninja/fact",
	ProviderDogFact:    "https://dog-api.kinduff.com/api/facts",
	ProviderQuote:      "https://api.quotable.io/random",
	ProviderRiddle:     "https://riddles-api.vercel.app/random",
	ProviderFortune:    "https://api.chucknorris.io/jokes/random",
	ProviderTrivia:     "https://the-trivia-api.com/v2/questions?limit=1",
	ProviderRandomFact: "https://uselessfacts.jsph.pl/random.json?language=en",
	ProviderGeoIP:      "http://ip-api.com/json/",
	ProviderWeather:    "http://api.weatherstack.com/current",
}

type provider struct {
	format      payloadFormat
	accept      string
	requiresKey bool
	buildURL    func(endpoint, query, apiKey string) string
}

func staticURL(endpoint, _, _ string) string {
	return endpoint
}

var providers = map[string]provider{
	ProviderJoke:       {format: formatText, accept: "text/plain", buildURL: staticURL},
	ProviderPun:        {format: formatText, accept: "text/plain", buildURL: staticURL},
	ProviderDadJoke:    {format: formatText, accept: "text/plain", buildURL: staticURL},
	ProviderMeme:       {format: formatJSON, accept: "application/json", buildURL: staticURL},
	ProviderCatFact:    {format: formatJSON, accept: "application/json", buildURL: staticURL},
	ProviderDogFact:    {format: formatJSON, accept: "application/json", buildURL: staticURL},
	ProviderQuote:      {format: formatJSON, accept: "application/json", buildURL: staticURL},
	ProviderRiddle:     {format: formatJSON, accept: "application/json", buildURL: staticURL},
	ProviderFortune:    {format: formatJSON, accept: "application/json", buildURL: staticURL},
	ProviderTrivia:     {format: formatJSON, accept: "application/json", buildURL: staticURL},
	ProviderRandomFact: {format: formatJSON, accept: "application/json", buildURL: staticURL},
	ProviderGeoIP: {
		format: formatJSON,
		accept: "application/json",
		buildURL: func(endpoint, query, _ string) string {
			return strings.TrimSuffix(endpoint, "/") + "/" + url.PathEscape(query)
		},
	},
	ProviderWeather: {
		format:      formatJSON,
		accept:      "application/json",
		requiresKey: true,
		buildURL: func(endpoint, query, apiKey string) string {
			params := url.Values{}
			params.Set("access_key", apiKey)
			params.Set("query", query)
			return endpoint + "?" + params.Encode()
		},
	},
}
