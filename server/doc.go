// Package server exposes talentrank over HTTP.
//
// Routes:
//
//	GET    /health          liveness probe
//	POST   /datasets        upload a sheet (multipart field "file"), 201 {"dataset_id"}
//	POST   /dataset         alias of POST /datasets
//	GET    /datasets        list loaded datasets
//	DELETE /datasets/{id}   evict a dataset
//	POST   /search          rank a dataset against a requirement
//
// Errors are JSON objects of the form {"detail": "..."}.
package server
