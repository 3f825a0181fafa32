package consts

// registers every AVR core with a stack has.
var coreRegisters = []Constant{
	{Address: 0x3D, Name: "SPL"},
	{Address: 0x3E, Name: "SPH"},
	{Address: 0x3F, Name: "SREG"},
}

var mcus = map[string]MCU{
	"generic": {
		Name: "generic",
	},

	"attiny4313": {
		Name:      "attiny4313",
		FlashSize: 4096,
		Registers: []Constant{
			{Address: 0x01, Name: "DIDR"},
			{Address: 0x02, Name: "UBRRH"},
			{Address: 0x03, Name: "UCSRC"},
			{Address: 0x08, Name: "ACSR"},
			{Address: 0x09, Name: "UBRRL"},
			{Address: 0x0A, Name: "UCSRB"},
			{Address: 0x0B, Name: "UCSRA"},
			{Address: 0x0C, Name: "UDR"},
			{Address: 0x0D, Name: "USICR"},
			{Address: 0x0E, Name: "USISR"},
			{Address: 0x0F, Name: "USIDR"},
			{Address: 0x10, Name: "PIND"},
			{Address: 0x11, Name: "DDRD"},
			{Address: 0x12, Name: "PORTD"},
			{Address: 0x13, Name: "GPIOR0"},
			{Address: 0x14, Name: "GPIOR1"},
			{Address: 0x15, Name: "GPIOR2"},
			{Address: 0x16, Name: "PINB"},
			{Address: 0x17, Name: "DDRB"},
			{Address: 0x18, Name: "PORTB"},
			{Address: 0x19, Name: "PINA"},
			{Address: 0x1A, Name: "DDRA"},
			{Address: 0x1B, Name: "PORTA"},
			{Address: 0x1C, Name: "EECR"},
			{Address: 0x1D, Name: "EEDR"},
			{Address: 0x1E, Name: "EEAR"},
			{Address: 0x21, Name: "WDTCR"},
			{Address: 0x23, Name: "GTCCR"},
			{Address: 0x26, Name: "CLKPR"},
			{Address: 0x2E, Name: "TCCR1B"},
			{Address: 0x2F, Name: "TCCR1A"},
			{Address: 0x30, Name: "TCCR0A"},
			{Address: 0x31, Name: "OSCCAL"},
			{Address: 0x32, Name: "TCNT0"},
			{Address: 0x33, Name: "TCCR0B"},
			{Address: 0x34, Name: "MCUSR"},
			{Address: 0x35, Name: "MCUCR"},
			{Address: 0x36, Name: "OCR0A"},
			{Address: 0x37, Name: "SPMCSR"},
			{Address: 0x38, Name: "TIFR"},
			{Address: 0x39, Name: "TIMSK"},
			{Address: 0x3A, Name: "EIFR"},
			{Address: 0x3B, Name: "GIMSK"},
		},
	},

	"atmega328p": {
		Name:      "atmega328p",
		FlashSize: 32768,
		Registers: []Constant{
			{Address: 0x03, Name: "PINB"},
			{Address: 0x04, Name: "DDRB"},
			{Address: 0x05, Name: "PORTB"},
			{Address: 0x06, Name: "PINC"},
			{Address: 0x07, Name: "DDRC"},
			{Address: 0x08, Name: "PORTC"},
			{Address: 0x09, Name: "PIND"},
			{Address: 0x0A, Name: "DDRD"},
			{Address: 0x0B, Name: "PORTD"},
			{Address: 0x15, Name: "TIFR0"},
			{Address: 0x16, Name: "TIFR1"},
			{Address: 0x17, Name: "TIFR2"},
			{Address: 0x1B, Name: "PCIFR"},
			{Address: 0x1C, Name: "EIFR"},
			{Address: 0x1D, Name: "EIMSK"},
			{Address: 0x1E, Name: "GPIOR0"},
			{Address: 0x1F, Name: "EECR"},
			{Address: 0x20, Name: "EEDR"},
			{Address: 0x21, Name: "EEARL"},
			{Address: 0x22, Name: "EEARH"},
			{Address: 0x23, Name: "GTCCR"},
			{Address: 0x24, Name: "TCCR0A"},
			{Address: 0x25, Name: "TCCR0B"},
			{Address: 0x26, Name: "TCNT0"},
			{Address: 0x27, Name: "OCR0A"},
			{Address: 0x28, Name: "OCR0B"},
			{Address: 0x2A, Name: "GPIOR1"},
			{Address: 0x2B, Name: "GPIOR2"},
			{Address: 0x2C, Name: "SPCR"},
			{Address: 0x2D, Name: "SPSR"},
			{Address: 0x2E, Name: "SPDR"},
			{Address: 0x30, Name: "ACSR"},
			{Address: 0x33, Name: "SMCR"},
			{Address: 0x34, Name: "MCUSR"},
			{Address: 0x35, Name: "MCUCR"},
			{Address: 0x37, Name: "SPMCSR"},
		},
	},
}
