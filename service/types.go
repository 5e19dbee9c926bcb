package service

// Messages sent to the players of a finished round
const (
	WinMessage  = "You've win!!\nGame will refresh automatically!"
	LoseMessage = "You've lost!\nGame will refresh automatically!"
)

// Banner is logged once the server is ready
const Banner = "Even and Odd Game! Server running and waiting for connections."
