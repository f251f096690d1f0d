// Package hostapi builds HTTP clients from a declarative operation table.
//
// Each table entry maps an operation name to a "METHOD path" descriptor:
//
//   - Path placeholders (":id") are filled from call parameters and removed
//     from the parameter set
//   - POST, PUT, PATCH and DELETE send the remaining parameters as a JSON
//     body; every other method sends them in the query string
//   - Header layers merge client, endpoint and call headers, later ones win
//   - Per-endpoint supersession: a call made WithDedup cancels the call still
//     in flight for the same path before it is sent
//   - Results come back as an Envelope ({Data, Error, Canceled}) instead of
//     errors for HTTP statuses, network failures and cancellations
//   - Prometheus metrics, key/value debug logging and an OpenAPI 3.1 export
//
// Typical usage:
//
//	client, err := hostapi.New(hostapi.Table{
//	    "getUser":  {Path: "POST api/loginUp", Headers: map[string]string{"x-f": "xx"}},
//	    "download": {Path: "POST api/download/:id"},
//	}, hostapi.WithBaseURL("https://api.example.com"))
//	if err != nil {
//	    return err
//	}
//	env, err := client.Call(ctx, "download", hostapi.Params{"id": 7}, hostapi.WithDedup())
//
// Typed callables come from Bind:
//
//	download := hostapi.MustBind[DownloadRequest, DownloadResponse](client, "download")
//	res, err := download(ctx, &DownloadRequest{ID: 7})
//
// Only configuration problems (bad options, malformed descriptors, unknown
// operations, strict-mode placeholders) are returned as errors.
package hostapi
