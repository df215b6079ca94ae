package constants

type (
	RequestSource string
	APIStatus     string
	CachePrefix   string
)

const (
	RequestSourceJWT    RequestSource = "JWT"
	RequestSourceAPIKey RequestSource = "API_KEY"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixProject CachePrefix = "PROJECT_"
)

// DoadorFrequencies is the closed set accepted for doadores.frequencia.
var DoadorFrequencies = []string{"unica", "mensal", "trimestral", "semestral", "anual"}
