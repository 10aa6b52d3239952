// Package iskwet embeds an iskwet dictionary in a Go program, without the HTTP server.
//
// The client answers the same lookups as the service endpoints:
//
//	client, _ := iskwet.Open("words.json", iskwet.WithLogger(slog.Default()))
//	w, err := client.Get(ctx, "42")
//	if errors.Is(err, iskwet.ErrWordNotFound) {
//	    // no such uuid
//	}
//	cats, _ := client.ByDefinition(ctx, "en", "cat")
//
// The dictionary is loaded once and never changes, so a Client is safe for concurrent use.
package iskwet
