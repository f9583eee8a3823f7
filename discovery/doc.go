// Package discovery announces this device on the local network and
// reports the announcements of other devices, using UDP multicast.
//
// Typical usage:
//
//	d := &discovery.Discover{
//		Info:                         []byte("my-service-info"),
//		Port:                         53550,
//		IntervalBetweenAnnouncements: time.Second,
//	}
//	if err := d.Start(); err != nil {
//		return err
//	}
//	defer d.Close()
//
//	for entry := range d.Entries {
//		fmt.Printf("Discovered: %s at %v\n", entry.Info, entry.Time)
//	}
//
// Behavior:
//   - Announcements are sent to 239.0.0.1 on the configured port.
//   - Every packet starts with the random UUID of its sender, so a device
//     ignores its own announcements.
//   - Packets too short to carry a key are dropped.
//   - Entries is closed once the listener stops.
package discovery
