// Package daemon wires the hardware loops together and supervises them.
//
// Three loops run concurrently, each owning exactly one piece of hardware:
// the fan controller owns the PWM pin, the button watcher owns the input
// pin, the pager owns the OLED. They communicate only over channels, fanned
// out by the action dispatcher. Signals and reboot/poweroff button bindings
// funnel into a single shutdown path that parks the display and leaves the
// fan at full power.
//
// The fan is the one mandatory piece of hardware: the daemon refuses to
// start without it. A missing button or display just disables that feature.
package daemon
