package statute

import (
	"fmt"
)

// Command is the CMD field of a SOCKS5 request.
type Command byte

// request command
const (
	CommandConnect   Command = 0x01
	CommandBind      Command = 0x02
	CommandAssociate Command = 0x03
)

// ParseCommand maps a CMD byte to a Command. Unknown codes fail with
// *UnsupportedCommandError.
func ParseCommand(code byte) (Command, error) {
	switch c := Command(code); c {
	case CommandConnect, CommandBind, CommandAssociate:
		return c, nil
	}
	return 0, &UnsupportedCommandError{code}
}

// Code returns the wire value of the command.
func (c Command) Code() byte { return byte(c) }

func (c Command) String() string {
	switch c {
	case CommandConnect:
		return "connect"
	case CommandBind:
		return "bind"
	case CommandAssociate:
		return "associate"
	}
	return fmt.Sprintf("command(%#02x)", byte(c))
}
