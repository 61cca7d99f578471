// Package article drives the generation loop: it asks the language model for
// one article at a time, discards titles that already exist and stores the
// rest until the requested number of articles has been saved.
//
// Failures are classified. Fatal ones (bad configuration, rejected
// credentials, a cancelled context) end the run at once; everything else is
// retried with capped exponential backoff until the attempt budget of the
// RetryPolicy is spent.
package article
