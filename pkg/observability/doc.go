/*
Package observability turns automaton lifecycle hooks into metrics and logs.

Metrics exports Prometheus counters and histograms for runs and trace steps;
LoggingHooks emits one structured log line per halt. Chain combines several
domain.LifecycleHooks so both can be attached to the same automaton.
*/
package observability
