package eve

// Register addresses, byte-addressed, as documented on the BT81x/FT81x
// register map.
const (
	regID        = 0x302000
	regFrames    = 0x302004
	regClock     = 0x302008
	regFrequency = 0x30200C
	regCPUReset  = 0x302020

	regHCycle  = 0x30202C
	regHOffset = 0x302030
	regHSize   = 0x302034
	regHSync0  = 0x302038
	regHSync1  = 0x30203C
	regVCycle  = 0x302040
	regVOffset = 0x302044
	regVSize   = 0x302048
	regVSync0  = 0x30204C
	regVSync1  = 0x302050

	regDLSwap   = 0x302054
	regRotate   = 0x302058
	regDither   = 0x302060
	regSwizzle  = 0x302064
	regCSpread  = 0x302068
	regPCLKPol  = 0x30206C
	regPCLK     = 0x302070
	regGPIODir  = 0x302090
	regGPIO     = 0x302094
	regCmdRead  = 0x3020F8
	regCmdWrite = 0x3020FC
	regCmdbSpace = 0x302574
)

// RAM regions.
const (
	ramG       = 0x000000
	ramDL      = 0x300000
	ramDLSize  = 8 * 1024
	ramCmd     = 0x308000
	ramCmdSize = 4096
)

// panel timing parameters decoded from the reference 480x128 panel.
const (
	panelWidth  = 480
	panelHeight = 128

	panelHCycle  = 531
	panelHOffset = 43
	panelHSync0  = 0
	panelHSync1  = 4
	panelVCycle  = 292
	panelVOffset = 84
	panelVSync0  = 0
	panelVSync1  = 4

	panelPCLKDiv  = 9
	panelPCLKPol  = 1
	panelSwizzle  = 0
	panelCSpread  = 0
	panelDither   = 1
	panelRotate   = 4
)

// Host commands: 3-byte frames with no address, used to move the chip
// between clock/power states.
const (
	hostActive    = 0x00
	hostStandby   = 0x41
	hostSleep     = 0x42
	hostClkExt    = 0x44
	hostClkInt    = 0x48
	hostPwrDown   = 0x50
	hostClkSel    = 0x61
	hostRstPulse  = 0x68
)

// Coprocessor opcodes, written as 32-bit little-endian words into RAM_CMD.
const (
	cmdDLStart   = 0xFFFFFF00
	cmdSwap      = 0xFFFFFF01
	cmdBGColor   = 0xFFFFFF09
	cmdFGColor   = 0xFFFFFF0A
	cmdText      = 0xFFFFFF0C
	cmdButton    = 0xFFFFFF0D
	cmdKeys      = 0xFFFFFF0E
	cmdSpinner   = 0xFFFFFF16
	cmdStop      = 0xFFFFFF17
	cmdInflate   = 0xFFFFFF22
	cmdLoadImage = 0xFFFFFF24
	cmdNumber    = 0xFFFFFF2E
	cmdSetRotate = 0xFFFFFF36
	cmdSetBitmap = 0xFFFFFF42
)

// CMD_TEXT/CMD_NUMBER centring options.
const (
	optCenterX = 0x0200
	optCenterY = 0x0400
	optCenter  = optCenterX | optCenterY
)

// Bitmap formats used by this driver.
const (
	formatRGB565 = 7
	formatL8     = 3
)

// logoSize is the fixed width/height of the idle-face logo bitmap.
const logoSize = 32

// Primitive types for BEGIN.
const (
	primBitmaps   = 1
	primPoints    = 2
	primLines     = 3
	primLineStrip = 4
	primRects     = 9
)
