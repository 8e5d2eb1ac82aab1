// Package lib holds modules that do not fit strictly into other layers:
// background job processing (Redis/Asynq), outbound email (Resend),
// SMS/WhatsApp delivery (Twilio), the media store and geocoding HTTP
// clients, and the periodic dependency health monitor.
package lib
