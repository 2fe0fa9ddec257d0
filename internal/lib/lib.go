// Package lib holds modules that do not fit strictly into other layers:
// background job processing (asynq on Redis) and the Resend email client.
package lib
