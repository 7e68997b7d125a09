// Package api hosts the HTTP server, middleware, and handlers for the
// documentation and analytics surface. Notable routes:
//   - GET /healthz / readyz for Kubernetes probes.
//   - GET /metrics for Prometheus scraping.
//   - GET /robots.txt, /sitemap.xml, /llms.txt, /page.json, /architecture.txt
//     for site-level artifacts.
//   - GET /{page}/llms.txt, /{page}/page.json, /{page}/static.html for
//     per-page artifacts.
//   - GET /api/v1/analytics/... for visit reporting backed by the file store.
package api
