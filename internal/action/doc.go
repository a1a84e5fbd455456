// Package action binds decoded button events to their configured effects.
//
// The binding table comes from the [key] config section and is validated at
// load: an unknown action name is rejected rather than silently ignored at
// press time. The Dispatcher fans commands out to the pager and the fan
// controller over buffered channels without ever blocking the button loop,
// and turns reboot/poweroff bindings into a terminate signal the daemon
// uses to run its normal shutdown path before invoking systemctl.
package action
