// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes circuit breakers for the two upstream services this service
// depends on: the YouTube Data API and the language-model APIs.
//
// There is deliberately no retry helper here: every outbound call in the
// summarization pipeline is attempted exactly once per request, and a breaker
// only rejects calls, it never repeats them.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.OpenAIAPIConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callExternalService()
//	})
package resilience
